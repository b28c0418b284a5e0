package main

import (
	"elearn/config"
	"elearn/database"
	"elearn/models"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the first superadmin account from SUPERADMIN_EMAIL,
// SUPERADMIN_NAME and SUPERADMIN_PASSWORD. Safe to re-run.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	email := os.Getenv("SUPERADMIN_EMAIL")
	name := os.Getenv("SUPERADMIN_NAME")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD must be set")
	}
	if name == "" {
		name = "Super Admin"
	}

	db := database.Database.Db

	var existing models.User
	if err := db.Where("email = ? AND is_deleted = false", email).First(&existing).Error; err == nil {
		if existing.MainRole == "SUPERADMIN" {
			log.Printf("Superadmin %s already exists, nothing to do", email)
			return
		}
		existing.Role = "ADMIN"
		existing.MainRole = "SUPERADMIN"
		if err := db.Save(&existing).Error; err != nil {
			log.Fatalf("Failed to promote user: %v", err)
		}
		log.Printf("Promoted existing user %s to superadmin", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     "ADMIN",
		MainRole: "SUPERADMIN",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create superadmin: %v", err)
	}

	log.Printf("Created superadmin %s", email)
}
