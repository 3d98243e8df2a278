package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cityfare/cityfare/config"
	"github.com/cityfare/cityfare/models"
	"github.com/cityfare/cityfare/router"
	"github.com/cityfare/cityfare/services"
	"github.com/cityfare/cityfare/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	seedAdmin(db)

	var menuCache *services.MenuCache
	if client := config.InitRedis(); client != nil {
		menuCache = services.NewMenuCache(client, 5*time.Minute)
		utils.InfoLogger.Println("Menu cache enabled")
	}

	r := router.SetupRouter(db, menuCache)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.MenuItem{},
		&models.Order{},
		&models.Address{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedAdmin creates the first administrator from ADMIN_EMAIL and
// ADMIN_PASSWORD. Admin creation otherwise requires an existing admin,
// so a fresh deployment needs this bootstrap.
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil || count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to hash seed admin password: %v", err)
		return
	}

	admin := models.Admin{
		Name:     "Administrator",
		Email:    email,
		Password: string(hashed),
		City:     utils.CityAll,
	}
	if err := db.Create(&admin).Error; err != nil {
		utils.ErrorLogger.Printf("Failed to seed admin: %v", err)
		return
	}
	utils.InfoLogger.Printf("Seeded admin account %s (city=All)", email)
}
