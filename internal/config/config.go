package config

import "os"

type Config struct {
	AppPort       string
	DBDSN         string
	RedisAddr     string
	RedisPassword string
}

func Load() Config {
	return Config{
		AppPort:       get("APP_PORT", "6001"),
		DBDSN:         must("DB_DSN"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
	}
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
