package main

import (
	"elearn/config"
	"elearn/database"
	adminRoutes "elearn/routers/adminRoutes"
	authRoutes "elearn/routers/authRoutes"
	courseRoutes "elearn/routers/courseRoutes"
	userRoutes "elearn/routers/userRoutes"
	"elearn/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	utils.InitPaymentGateway()
	utils.StartMaintenanceScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded course media
	app.Static("/uploads", config.AppConfig.UploadDir)

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
