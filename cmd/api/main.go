package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/Adhisheshu1210/sb-works-backend/internal/config"
	"github.com/Adhisheshu1210/sb-works-backend/internal/db"
	"github.com/Adhisheshu1210/sb-works-backend/internal/handlers"
	"github.com/Adhisheshu1210/sb-works-backend/internal/realtime"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable, notifications disabled:", err)
		rdb = nil
	}

	hub := realtime.NewHub()
	go hub.Run()

	app := fiber.New()
	app.Use(cors.New())

	handlers.Register(app, gdb, hub, rdb)

	log.Println("Server running on port", cfg.AppPort)
	log.Fatal(app.Listen(":" + cfg.AppPort))
}
