package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-loyalty/internal/config"
	"go-pos-loyalty/internal/handler"
	"go-pos-loyalty/internal/messaging"
	"go-pos-loyalty/internal/middleware"
	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/internal/notifier"
	"go-pos-loyalty/internal/repository"
	"go-pos-loyalty/internal/service"
	"go-pos-loyalty/internal/ws"
	"go-pos-loyalty/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Store{}, &model.StoreHour{}, &model.SpecialDay{},
		&model.Product{}, &model.Variation{},
		&model.Order{}, &model.OrderItem{},
		&model.CashRegisterSession{},
		&model.Customer{}, &model.CustomerAddress{},
		&model.LoyaltyTransaction{}, &model.StatusConfig{},
		&model.User{},
	)

	// 3. Seed default store and admin user
	seedStoreAndAdmin(db)

	// 4. Realtime plumbing: websocket hub + redis bridge
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	wsHub := ws.NewHub()
	go wsHub.Run()

	orderNotifier := notifier.NewRedisNotifier(cfg.RedisAddr)
	go orderNotifier.Bridge(ctx, wsHub)

	// 5. Delivery hand-off producer (optional, needs a broker)
	var handoffs messaging.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer := messaging.NewProducer(cfg.KafkaBrokers, cfg.HandoffTopic, 256)
		producer.Start(ctx)
		handoffs = producer
	}

	// 6. Dependency Injection (Wiring Layers)
	storeRepo := repository.NewStoreRepo(db)
	productRepo := repository.NewProductRepo(db)
	variationRepo := repository.NewVariationRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	registerRepo := repository.NewRegisterRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	loyaltyRepo := repository.NewLoyaltyRepo(db)
	statusRepo := repository.NewStatusRepo(db)
	userRepo := repository.NewUserRepo(db)

	carts := service.NewCartRegistry()
	availability := service.NewAvailability(storeRepo)

	catalogService := service.NewCatalogService(productRepo)
	cartService := service.NewCartService(carts, productRepo)
	loyaltyService := service.NewLoyaltyService(db, customerRepo, loyaltyRepo, orderRepo)
	statusService := service.NewStatusService(statusRepo, orderRepo, productRepo, loyaltyService, orderNotifier)
	orderService := service.NewOrderService(db, carts, storeRepo, productRepo, variationRepo,
		orderRepo, registerRepo, customerRepo, loyaltyRepo, statusService, availability,
		orderNotifier, handoffs)
	registerService := service.NewRegisterService(db, registerRepo, orderRepo, statusService, orderNotifier)
	authService := service.NewAuthService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService, availability)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService, statusService)
	registerHandler := handler.NewRegisterHandler(registerService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Loyalty v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog + availability
	protected.Get("/stores/:store_id/catalog", catalogHandler.GetCatalog)
	protected.Get("/stores/:store_id/availability", catalogHandler.CheckAvailability)

	// Cart
	protected.Post("/carts/items", cartHandler.AddItem)
	protected.Put("/carts/items", cartHandler.SetQuantity)
	protected.Get("/carts/:cart_id", cartHandler.GetCart)

	// Orders
	protected.Post("/orders", orderHandler.Checkout)
	protected.Get("/orders/:id", orderHandler.GetOrder)
	protected.Get("/orders/:id/handoff", orderHandler.GetHandoff)
	protected.Post("/orders/:id/advance", orderHandler.Advance)
	protected.Post("/orders/:id/cancel", orderHandler.Cancel)
	protected.Get("/stores/:store_id/orders/active", orderHandler.Board)

	// Cash register
	protected.Post("/registers/open", registerHandler.Open)
	protected.Get("/registers/:id/summary", registerHandler.Summary)
	protected.Post("/registers/:id/close", middleware.RequireRole(model.RoleAdmin), registerHandler.Close)

	// Loyalty
	protected.Get("/customers/:id/statement", loyaltyHandler.Statement)
	protected.Post("/customers/:id/earn", middleware.RequireRole(model.RoleAdmin), loyaltyHandler.Earn)

	// WebSocket route: order feed per store
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws/:store_id", websocket.New(func(c *websocket.Conn) {
		wsHub.Register(c.Params("store_id"), c)
		defer wsHub.Unregister(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stop()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func seedStoreAndAdmin(db *gorm.DB) {
	var store model.Store
	err := db.First(&store).Error
	if err != nil {
		store = model.Store{
			Name:            "Default Store",
			AcceptingOrders: true,
		}
		if err := db.Create(&store).Error; err != nil {
			log.Printf("Warning: Failed to seed default store: %v", err)
			return
		}
		log.Printf("✅ Default store created: %s", store.ID)
	}

	// Every store needs its workflow statuses before the first checkout.
	statusRepo := repository.NewStatusRepo(db)
	if err := statusRepo.SeedDefaults(store.ID); err != nil {
		log.Printf("Warning: Failed to seed default statuses: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		admin := &model.User{
			StoreID:  store.ID,
			Email:    "admin@example.com",
			FullName: "Store Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
			return
		}
		log.Println("✅ Default admin user created: admin@example.com / admin123")
		log.Println("⚠️  IMPORTANT: Change this password before going live!")
	}
}
