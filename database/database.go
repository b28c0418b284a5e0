package database

import (
	"elearn/models"
	courseModels "elearn/models/course"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations and seeds the permission table
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.OTP{},
		&models.LoginTracking{},
		&models.Permission{},
		&models.Activity{},
		&courseModels.Course{},
		&courseModels.Lecture{},
		&courseModels.Subscription{},
		&courseModels.Progress{},
		&courseModels.CompletedLecture{},
		&courseModels.Payment{},
		&courseModels.Quiz{},
		&courseModels.QuizQuestion{},
		&courseModels.QuizAttempt{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	if err := SeedPermissions(db); err != nil {
		log.Fatalf("Permission seeding failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// SeedPermissions inserts the role capability table if rows are missing
func SeedPermissions(db *gorm.DB) error {
	for role, perms := range models.RolePermissions {
		for _, p := range perms {
			var existing models.Permission
			err := db.Where("role = ? AND permission = ? AND is_deleted = false", role, p).First(&existing).Error
			if err == nil {
				continue
			}
			if err != gorm.ErrRecordNotFound {
				return err
			}
			if err := db.Create(&models.Permission{Role: role, Permission: p}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
