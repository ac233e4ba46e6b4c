package main

import (
	"github.com/joho/godotenv"

	"github.com/quickbite/backend/config"
	"github.com/quickbite/backend/events"
	"github.com/quickbite/backend/models"
	"github.com/quickbite/backend/router"
	"github.com/quickbite/backend/storage"
	"github.com/quickbite/backend/utils"
)

func main() {
	utils.InitLogger()

	if err := godotenv.Load(); err != nil {
		// A missing .env is fine in containers; config falls back to
		// real environment variables.
		utils.InfoLogger.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := cfg.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Customer{},
		&models.Seller{},
		&models.DeliveryPartner{},
		&models.Category{},
		&models.FoodItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.DeliveryAssignment{},
		&models.Payment{},
		&models.Review{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	var pub *events.Publisher
	if cfg.RabbitMQURL != "" {
		pub, err = events.Connect(cfg.RabbitMQURL, "quickbite.orders")
		if err != nil {
			utils.ErrorLogger.Printf("RabbitMQ unavailable, order events disabled: %v", err)
			pub = nil
		} else {
			defer pub.Close()
		}
	}

	images, err := storage.NewLocalStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to prepare upload directory: %v", err)
	}

	r := router.SetupRouter(db, pub, images, cfg.UploadDir)

	utils.InfoLogger.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start server: %v", err)
	}
}
