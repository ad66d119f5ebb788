package database

import (
	"log"

	"warehouse-backend/internal/config"
	"warehouse-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Seeded once, at first initialization. Change it via /change_password.
const (
	DefaultAdminUser     = "admin"
	defaultAdminPassword = "admin123"
)

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not open database %s: %v", cfg.DatabasePath, err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.StockLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	if err := SeedAdminUser(DB); err != nil {
		log.Fatalf("Could not seed admin user: %v", err)
	}

	log.Println("Database ready:", cfg.DatabasePath)
}

// SeedAdminUser inserts the default admin account when the users table is
// empty. Subsequent starts leave existing users alone.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := models.User{Username: DefaultAdminUser, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	log.Printf("[WARN] Seeded default user %q with the default password, change it after first login", DefaultAdminUser)
	return nil
}
