package main

import (
	"log"
	"os"

	"shop_manager/database"
	"shop_manager/handler"
	"shop_manager/helper"
	"shop_manager/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // cho phép upload tối đa 100MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	handler.InitVNPay()

	helper.StartPaymentExpiryScheduler()
	helper.StartCartCleanupScheduler()

	router.SetupRoutes(app)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8002"
	}

	// Listen chỉ trả về khi có lỗi; dừng scheduler trước khi thoát
	// (defer không chạy qua log.Fatal)
	err := app.Listen(":" + port)
	helper.StopPaymentExpiryScheduler()
	helper.StopCartCleanupScheduler()
	log.Fatal(err)
}
