package main

import (
	"log"

	"github.com/rashinkp/byway-sub000/config"
	controllers "github.com/rashinkp/byway-sub000/controllers/course"
	"github.com/rashinkp/byway-sub000/database"
	authRoutes "github.com/rashinkp/byway-sub000/routers/authRoutes"
	cartRoutes "github.com/rashinkp/byway-sub000/routers/cartRoutes"
	courseRoutes "github.com/rashinkp/byway-sub000/routers/courseRoutes"
	userRoutes "github.com/rashinkp/byway-sub000/routers/userRoutes"
	walletRoutes "github.com/rashinkp/byway-sub000/routers/walletRoutes"
	"github.com/rashinkp/byway-sub000/services/storage"
	"github.com/rashinkp/byway-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	storage.Connect()

	if err := controllers.InitCertificateService(); err != nil {
		log.Fatalf("Failed to initialise certificate service: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded thumbnails
	app.Static("/uploads", "./uploads")

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupInstructorCourseRoutes(app)
	cartRoutes.SetupCartRoutes(app)
	walletRoutes.SetupWalletRoutes(app)

	utils.StartCertificateScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
