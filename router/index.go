package router

import (
	"shop_manager/handler"
	"shop_manager/middleware"
	"shop_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterCustomer(), handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/login-employee", handler.LoginEmployee)
	auth.Post("/logout", handler.Logout)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetCustomers)
	customer.Get("/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.GetCustomerById)
	customer.Put("/:customerId", middleware.Protected(), validate.GetById("customerId"), validate.UpdateCustomer(), handler.UpdateCustomer)

	employee := v1.Group("/employee", logger.New())
	employee.Get("/", middleware.Protected(), handler.GetEmployees)

	category := v1.Group("/category", logger.New())
	category.Get("/", handler.GetCategories)

	product := v1.Group("/product", logger.New())
	product.Get("/", handler.GetProducts)
	product.Get("/:productId", validate.GetById("productId"), handler.GetProductById)
	product.Post("/", middleware.Protected(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:productId", middleware.Protected(), validate.GetById("productId"), validate.UpdateProduct(), handler.EditProduct)
	product.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteProduct)
	product.Post("/signature", middleware.Protected(), handler.GenerateSignature)
	product.Post("/:productId/image", middleware.Protected(), validate.GetById("productId"), handler.UploadProductImage)
	// Theo dõi tồn kho realtime theo sản phẩm
	product.Get("/stock/:id", middleware.OptionalJWT(), websocket.New(handler.WebSocketConnection))

	cart := v1.Group("/cart", logger.New())
	cart.Get("/:customerId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.GetById("customerId"), handler.GetCartDetail)
	cart.Post("/", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.AddToCart(), handler.AddToCart)
	cart.Put("/:customerId/:productId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.UpdateCartItem(), handler.UpdateCartItem)
	cart.Delete("/:customerId/:productId", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.RemoveCartItem)
	cart.Delete("/:customerId", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.ClearCart)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), handler.GetOrders)
	order.Get("/status", middleware.Protected(), handler.GetOrderStatusCounts)
	order.Get("/revenue", middleware.Protected(), handler.GetMonthlyRevenue)
	order.Get("/:customerId", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.GetById("customerId"), handler.GetOrdersByCustomer)
	order.Post("/", middleware.OptionalJWT(), middleware.OptionalAuth(), validate.CreateOrder(), handler.CreateOrder)
	order.Patch("/:orderId", middleware.Protected(), validate.GetById("orderId"), validate.UpdateOrder(), handler.UpdateOrder)
	order.Delete("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.DeleteOrder)
	order.Patch("/return-stock/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.ReturnStock)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/pay/create_vnpay_url", middleware.OptionalJWT(), middleware.OptionalAuth(), handler.CreatePayment)
	payment.Get("/vnpay_return", handler.VNPayReturn)
	payment.Get("/vnpay_ipn", handler.VNPayIPN)
	payment.Post("/querydr", middleware.Protected(), handler.QueryTransaction)
	payment.Post("/refund", middleware.Protected(), handler.RefundTransaction)
}
