package initializers

import (
	"log"

	"github.com/davidkiarie/trendora-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Color{},
		&models.Size{},
		&models.Product{},
		&models.ProductImage{},
		&models.Banner{},
		&models.TrendingItem{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	log.Println("Database synced successfully.")
}
