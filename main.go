package main

import (
	"log"

	"certstock/config"
	"certstock/database"
	branchRoutes "certstock/routers/branchRoutes"
	certificateRoutes "certstock/routers/certificateRoutes"
	medalRoutes "certstock/routers/medalRoutes"
	"certstock/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	utils.ConfigureLogger()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	certificateRoutes.SetupCertificateRoutes(app)
	certificateRoutes.SetupAdminCertificateRoutes(app)
	medalRoutes.SetupMedalRoutes(app)
	branchRoutes.SetupBranchRoutes(app)

	// Background reservation expiry sweep
	utils.InitializeReservationSweeper()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
