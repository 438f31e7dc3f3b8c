package main

import (
	"log"

	"go-pos-loyalty/internal/model"
	"go-pos-loyalty/pkg/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Seeds a demo catalog into the first store so the API can be exercised
// without a frontend. Safe to run more than once, it skips stores that
// already have products.
func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()

	// 3. Find the store
	var store model.Store
	if err := db.First(&store).Error; err != nil {
		log.Fatalf("❌ No store found, start the API once to seed it: %v", err)
	}

	var count int64
	db.Model(&model.Product{}).Where("store_id = ?", store.ID).Count(&count)
	if count > 0 {
		log.Printf("Store %s already has %d products, nothing to do", store.Name, count)
		return
	}

	// 4. Opening hours: Tue-Sun 18:00-23:00
	for weekday := 0; weekday <= 6; weekday++ {
		hour := model.StoreHour{
			StoreID:   store.ID,
			Weekday:   weekday,
			IsOpen:    weekday != 1, // closed on Mondays
			OpenTime:  "18:00",
			CloseTime: "23:00",
		}
		if err := db.Create(&hour).Error; err != nil {
			log.Fatalf("❌ Failed to seed store hours: %v", err)
		}
	}

	// 5. Catalog
	pizza := model.Product{
		StoreID:       store.ID,
		Name:          "Pizza",
		Price:         decimal.Zero,
		Stock:         50,
		Active:        true,
		HasVariations: true,
		EarnsPoints:   true,
		PointsRate:    1,
	}
	if err := db.Create(&pizza).Error; err != nil {
		log.Fatalf("❌ Failed to seed product: %v", err)
	}
	variations := []model.Variation{
		{ProductID: pizza.ID, Name: "Broto", PriceAdjustment: decimal.NewFromFloat(25.00), Stock: 20},
		{ProductID: pizza.ID, Name: "Grande", PriceAdjustment: decimal.NewFromFloat(40.00), Stock: 20},
		{ProductID: pizza.ID, Name: "Família", PriceAdjustment: decimal.NewFromFloat(55.00), Stock: 10},
	}
	for i := range variations {
		if err := db.Create(&variations[i]).Error; err != nil {
			log.Fatalf("❌ Failed to seed variation: %v", err)
		}
	}

	refrigerante := model.Product{
		StoreID:     store.ID,
		Name:        "Refrigerante Lata",
		Price:       decimal.NewFromFloat(6.50),
		Stock:       100,
		Active:      true,
		EarnsPoints: false,
	}
	if err := db.Create(&refrigerante).Error; err != nil {
		log.Fatalf("❌ Failed to seed product: %v", err)
	}

	// 6. A demo customer with points to redeem
	customer := model.Customer{
		StoreID: store.ID,
		Name:    "Cliente Demo",
		Phone:   "11999990000",
		Points:  9,
	}
	if err := db.Create(&customer).Error; err != nil {
		log.Fatalf("❌ Failed to seed customer: %v", err)
	}

	log.Printf("✅ Demo data seeded for store %s (customer %s has %d points)", store.Name, customer.Name, customer.Points)
}
