package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mwaniki/serviceos-api/internal/config"
	"github.com/mwaniki/serviceos-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Account entities
		&entity.Company{},
		&entity.User{},

		// CRM entities
		&entity.Customer{},
		&entity.Staff{},
		&entity.Lead{},

		// Inventory entities
		&entity.StockItem{},

		// Operational entities
		&entity.WorkOrder{},
		&entity.WorkOrderStockUsage{},
		&entity.Invoice{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a default company and admin user
// when configured via environment variables.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail == "" || adminPassword == "" {
		log.Println("No admin credentials configured, skipping seed")
		return nil
	}

	var existingAdmin entity.User
	if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	if adminName == "" {
		adminName = "Admin User"
	}
	firstName := adminName
	lastName := ""
	for i, c := range adminName {
		if c == ' ' {
			firstName = adminName[:i]
			lastName = adminName[i+1:]
			break
		}
	}

	adminUser := entity.User{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      "admin",
	}

	return db.Transaction(func(tx *gorm.DB) error {
		company := entity.Company{
			ID:      uuid.New(),
			Name:    "Default Company",
			Slug:    "default-company",
			OwnerID: adminUser.ID,
			Email:   &adminEmail,
		}
		adminUser.CompanyID = &company.ID

		if err := tx.Create(&adminUser).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if err := tx.Create(&company).Error; err != nil {
			return fmt.Errorf("failed to create default company: %w", err)
		}

		log.Printf("Admin user created: %s", adminEmail)
		return nil
	})
}
