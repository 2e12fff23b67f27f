package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/saikrishna7004/campus-360-backend/common/auth"
	"github.com/saikrishna7004/campus-360-backend/controllers"
	"github.com/saikrishna7004/campus-360-backend/middleware"
)

// staffRoles may manage catalog content.
var staffRoles = []auth.Role{auth.RoleVendor, auth.RoleAdmin, auth.RoleCanteen}

// RegisterOrderRoutes sets up the order lifecycle routes. Role checks beyond
// authentication live in the scope policy so a single table decides access.
func RegisterOrderRoutes(r *gin.Engine, oc *controllers.OrderController, authMW gin.HandlerFunc) {
	orderRoutes := r.Group("/orders")
	orderRoutes.Use(authMW)

	orderRoutes.POST("", oc.CreateOrder)
	orderRoutes.GET("", oc.ListOrders)
	orderRoutes.GET("/history", oc.History)
	orderRoutes.GET("/admin", oc.ActiveQueue)
	orderRoutes.PATCH("/:id/status", oc.UpdateStatus)
	orderRoutes.GET("/:id", oc.GetOrder)
}

// RegisterCartRoutes sets up cart sync and print-document uploads.
func RegisterCartRoutes(r *gin.Engine, cc *controllers.CartController, authMW gin.HandlerFunc) {
	cartRoutes := r.Group("/cart")
	cartRoutes.Use(authMW)

	cartRoutes.POST("/sync", cc.SyncCart)
	cartRoutes.GET("/latest", cc.LatestCart)
	cartRoutes.POST("/documents/presign", cc.PresignDocument)
}

// RegisterVendorRoutes sets up the vendor console. Outlet status lookups are public.
func RegisterVendorRoutes(r *gin.Engine, vc *controllers.VendorController, authMW gin.HandlerFunc) {
	vendorRoutes := r.Group("/vendor")
	vendorRoutes.GET("/status/:vendorType", vc.GetStatus)

	console := vendorRoutes.Group("")
	console.Use(authMW)
	console.GET("/dashboard", vc.Dashboard)
	console.POST("/status", vc.SetStatus)
	console.GET("/orders", vc.Queue)
	console.GET("/history", vc.History)
}

// RegisterUserRoutes sets up registration, login and account approval.
func RegisterUserRoutes(r *gin.Engine, uc *controllers.UserController, authMW gin.HandlerFunc) {
	userRoutes := r.Group("/users")
	userRoutes.POST("/register", uc.Register)
	userRoutes.POST("/login", uc.Login)

	authed := userRoutes.Group("")
	authed.Use(authMW)
	authed.GET("/verify_token", uc.VerifyToken)

	adminRoutes := authed.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.GET("/pending", uc.Pending)
	adminRoutes.PUT("/:id/approve", uc.Approve)
}

// RegisterProductRoutes sets up the outlet catalogs.
func RegisterProductRoutes(r *gin.Engine, pc *controllers.ProductController, authMW gin.HandlerFunc) {
	productRoutes := r.Group("/products")
	productRoutes.GET("/:type", pc.ListByType)
	productRoutes.GET("/id/:id", pc.GetProduct)

	staff := productRoutes.Group("")
	staff.Use(authMW, middleware.RequireRoles(staffRoles...))
	staff.POST("", pc.CreateProduct)
	staff.POST("/images/presign", pc.PresignImage)
	staff.PUT("/:id", pc.UpdateProduct)
	staff.DELETE("/:id", pc.DeleteProduct)
}

func RegisterNewsRoutes(r *gin.Engine, nc *controllers.NewsController, authMW gin.HandlerFunc) {
	newsRoutes := r.Group("/news")
	newsRoutes.GET("", nc.ListNews)
	newsRoutes.GET("/:id", nc.GetNews)

	adminRoutes := newsRoutes.Group("")
	adminRoutes.Use(authMW, middleware.AdminOnly())
	adminRoutes.POST("", nc.CreateNews)
	adminRoutes.PUT("/:id", nc.UpdateNews)
	adminRoutes.DELETE("/:id", nc.DeleteNews)
}

func RegisterBookRoutes(r *gin.Engine, bc *controllers.BookController, authMW gin.HandlerFunc) {
	bookRoutes := r.Group("/books")
	bookRoutes.Use(authMW)

	bookRoutes.GET("", bc.ListBooks)
	bookRoutes.GET("/borrowed", bc.Borrowed)
	bookRoutes.POST("/:id/borrow", bc.Borrow)
	bookRoutes.POST("/:id/return", bc.Return)

	adminRoutes := bookRoutes.Group("")
	adminRoutes.Use(middleware.AdminOnly())
	adminRoutes.POST("", bc.AddBook)
	adminRoutes.DELETE("/:id", bc.DeleteBook)
}

func RegisterOfficeRoutes(r *gin.Engine, oc *controllers.OfficeController, authMW gin.HandlerFunc) {
	officeRoutes := r.Group("/office/requests")
	officeRoutes.Use(authMW)

	officeRoutes.POST("", oc.CreateRequest)
	officeRoutes.GET("", oc.ListMine)
	officeRoutes.PATCH("/:id", middleware.AdminOnly(), oc.UpdateStatus)
}
