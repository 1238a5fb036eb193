package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"safar/config"
	"safar/database"
	"safar/routes"
	"safar/services"
	"safar/utils"
)

func main() {
	// Устанавливаем часовой пояс Узбекистана для всех логов
	uzbekLocation, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		uzbekLocation = time.FixedZone("UZT", 5*60*60)
	}
	time.Local = uzbekLocation

	cfg := config.LoadConfig()

	if err := utils.InitLogger(); err != nil {
		log.Printf("failed to init file loggers: %v", err)
	}

	// Подключение к PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	// Устанавливаем глобальный *gorm.DB для контроллеров
	utils.SetDB(db)

	// Миграция
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	log.Println("Migration complete")

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	utils.SetRedis(rdb)
	log.Println("Connected to Redis")

	// Запуск обновления цен по алертам в фоне
	go func() {
		log.Println("Starting price alert cron in background...")
		services.StartPriceAlertCron(db, cfg)
	}()

	// Создание Gin роутера и настройка всех маршрутов
	r := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on port %s", port)

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
