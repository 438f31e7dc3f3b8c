package config

import (
	"os"
	"strings"
)

type Config struct {
	Port         string
	RedisAddr    string
	KafkaBrokers []string
	HandoffTopic string
}

func Load() Config {
	return Config{
		Port:         getenv("PORT", "3000"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "")),
		HandoffTopic: getenv("HANDOFF_TOPIC", "orders.handoff"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
