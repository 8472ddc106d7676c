package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vyavasthita/ecommerce/internal/access"
	"github.com/vyavasthita/ecommerce/internal/auth"
	"github.com/vyavasthita/ecommerce/internal/config"
	"github.com/vyavasthita/ecommerce/internal/db"
	"github.com/vyavasthita/ecommerce/internal/events"
	"github.com/vyavasthita/ecommerce/internal/handlers"
)

func main() {
	cfg := config.Load()

	// Connect to PostgreSQL
	database, err := db.NewPostgresDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	userRepo := db.NewUserRepository(database)
	collectionRepo := db.NewCollectionRepository(database)
	productRepo := db.NewProductRepository(database)
	inventoryRepo := db.NewInventoryRepository(database)
	cartRepo := db.NewCartRepository(database, inventoryRepo)
	orderRepo := db.NewOrderRepository(database)

	// In-process event bus; cart disposal runs after order creation commits
	bus := events.NewBus()
	disposer := events.NewCartDisposer(cartRepo)
	bus.Subscribe(events.CartDisposal, disposer.HandleCartDisposal)

	tokens := auth.NewTokenManager(cfg.JWTSecret, 24*time.Hour)

	// Create handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	collectionHandler := handlers.NewCollectionHandler(collectionRepo)
	productHandler := handlers.NewProductHandler(productRepo)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo)
	cartHandler := handlers.NewCartHandler(cartRepo)
	orderHandler := handlers.NewOrderHandler(orderRepo, bus)

	// Setup router
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "store-api"})
	})

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	router.GET("/collections", access.Require(tokens, access.Collection, access.OpRead), collectionHandler.List)
	router.GET("/collections/:id", access.Require(tokens, access.Collection, access.OpRead), collectionHandler.Get)
	router.POST("/collections", access.Require(tokens, access.Collection, access.OpCreate), collectionHandler.Create)
	router.PUT("/collections/:id", access.Require(tokens, access.Collection, access.OpUpdate), collectionHandler.Update)
	router.DELETE("/collections/:id", access.Require(tokens, access.Collection, access.OpDelete), collectionHandler.Delete)

	router.GET("/products", access.Require(tokens, access.Product, access.OpRead), productHandler.List)
	router.GET("/products/:id", access.Require(tokens, access.Product, access.OpRead), productHandler.Get)
	router.POST("/products", access.Require(tokens, access.Product, access.OpCreate), productHandler.Create)
	router.PUT("/products/:id", access.Require(tokens, access.Product, access.OpUpdate), productHandler.Update)
	router.DELETE("/products/:id", access.Require(tokens, access.Product, access.OpDelete), productHandler.Delete)

	router.GET("/inventory", access.Require(tokens, access.Inventory, access.OpRead), inventoryHandler.List)
	router.GET("/inventory/:id", access.Require(tokens, access.Inventory, access.OpRead), inventoryHandler.Get)
	router.POST("/inventory", access.Require(tokens, access.Inventory, access.OpCreate), inventoryHandler.Create)
	router.PUT("/inventory/:id", access.Require(tokens, access.Inventory, access.OpUpdate), inventoryHandler.Update)
	router.DELETE("/inventory/:id", access.Require(tokens, access.Inventory, access.OpDelete), inventoryHandler.Delete)

	router.GET("/cart", access.Require(tokens, access.Cart, access.OpRead), cartHandler.List)
	router.POST("/cart", access.Require(tokens, access.Cart, access.OpCreate), cartHandler.Create)
	router.DELETE("/cart", access.Require(tokens, access.Cart, access.OpDelete), cartHandler.Delete)

	router.GET("/cart/:cart_id/cartitems", access.Require(tokens, access.CartItem, access.OpRead), cartHandler.ListItems)
	router.POST("/cart/:cart_id/cartitems", access.Require(tokens, access.CartItem, access.OpCreate), cartHandler.AddItem)
	router.PUT("/cart/:cart_id/cartitems/:id", access.Require(tokens, access.CartItem, access.OpUpdate), cartHandler.UpdateItem)
	router.DELETE("/cart/:cart_id/cartitems/:id", access.Require(tokens, access.CartItem, access.OpDelete), cartHandler.RemoveItem)

	router.GET("/orders", access.Require(tokens, access.Order, access.OpRead), orderHandler.List)
	router.GET("/orders/:id", access.Require(tokens, access.Order, access.OpRead), orderHandler.Get)
	router.POST("/orders", access.Require(tokens, access.Order, access.OpCreate), orderHandler.Create)
	router.PATCH("/orders/:id", access.Require(tokens, access.Order, access.OpUpdate), orderHandler.UpdatePayment)
	router.DELETE("/orders/:id", access.Require(tokens, access.Order, access.OpDelete), orderHandler.Delete)

	router.GET("/orders/:id/orderitems", access.Require(tokens, access.Order, access.OpRead), orderHandler.ListItems)
	router.GET("/orders/:id/orderitems/:item_id", access.Require(tokens, access.Order, access.OpRead), orderHandler.GetItem)

	// Start server
	log.Printf("🚀 Store API starting on http://localhost:%d", cfg.HTTPPort)
	router.Run(fmt.Sprintf(":%d", cfg.HTTPPort))
}
