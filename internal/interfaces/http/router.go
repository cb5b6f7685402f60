package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/authadmin"
	"github.com/jhoicas/tienda-admin-api/internal/application/authcustomer"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *authadmin.UseCase
	CustomerAuthUC  *authcustomer.UseCase
	UserUC          *usecase.UserUseCase
	CustomerAdminUC *usecase.CustomerAdminUseCase
	KategoriUC      *usecase.KategoriUseCase
	ProductUC       *usecase.ProductUseCase
	ExportUC        *usecase.CatalogExportUseCase
	SizeUC          *usecase.SizeUseCase
	ColorUC         *usecase.ColorUseCase
	SliderUC        *usecase.SliderUseCase
	KuponUC         *usecase.KuponUseCase

	CustomerTokens repository.CustomerTokenRepository
	Customers      repository.CustomerRepository
	JWTSecret      string
}

// Router registra las rutas de la API. Las lecturas de catálogo son públicas
// (con OptionalAdmin para que un principal admin vea también lo oculto);
// las mutaciones exigen rol. Las rutas fijas se registran antes que ":id".
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminAuth := AdminAuthMiddleware(deps.JWTSecret)
	anyAdmin := RequireRole(entity.RoleSuperAdmin, entity.RoleStaff)
	superOnly := RequireRole(entity.RoleSuperAdmin)
	optional := OptionalAdmin(deps.JWTSecret)
	customerAuth := CustomerAuthMiddleware(deps.CustomerTokens, deps.Customers)
	activeCustomer := RequireActiveCustomer()

	// Guard admin/staff: autenticación
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)
	api.Post("/forgot-password", authHandler.ForgotPassword)
	api.Post("/reset-password", authHandler.ResetPassword)
	api.Post("/logout", adminAuth, authHandler.Logout)
	api.Get("/me", adminAuth, authHandler.Me)

	// Guard customer: registro, verificación OTP y sesión
	customerAuthHandler := NewCustomerAuthHandler(deps.CustomerAuthUC)
	customer := api.Group("/customer")
	customer.Post("/register", customerAuthHandler.Register)
	customer.Post("/verify-otp", customerAuthHandler.VerifyOTP)
	customer.Post("/resend-otp", customerAuthHandler.ResendOTP)
	customer.Post("/login", customerAuthHandler.Login)
	customer.Post("/forgot-password", customerAuthHandler.ForgotPassword)
	customer.Post("/reset-password", customerAuthHandler.ResetPassword)
	customer.Post("/logout", customerAuth, customerAuthHandler.Logout)
	customer.Get("/me", customerAuth, activeCustomer, customerAuthHandler.Me)
	customer.Post("/change-password", customerAuth, activeCustomer, customerAuthHandler.ChangePassword)

	// Usuarios del panel (solo super_admin)
	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/users", adminAuth, superOnly)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/search", userHandler.Search)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Cuentas de clientes desde el panel (solo super_admin)
	customerHandler := NewCustomerHandler(deps.CustomerAdminUC)
	customers := api.Group("/customers", adminAuth, superOnly)
	customers.Get("/", customerHandler.List)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Patch("/:id/status", customerHandler.SetStatus)
	customers.Delete("/:id", customerHandler.Delete)

	// Categorías: lecturas públicas, mutaciones super_admin|staff
	kategoriHandler := NewKategoriHandler(deps.KategoriUC)
	kategoris := api.Group("/kategoris")
	kategoris.Get("/", optional, kategoriHandler.List)
	kategoris.Get("/search", optional, kategoriHandler.Search)
	kategoris.Post("/", adminAuth, anyAdmin, kategoriHandler.Create)
	kategoris.Put("/:id", adminAuth, anyAdmin, kategoriHandler.Update)
	kategoris.Patch("/:id/status", adminAuth, anyAdmin, kategoriHandler.SetStatus)
	kategoris.Delete("/:id", adminAuth, anyAdmin, kategoriHandler.Delete)
	kategoris.Get("/:id", optional, kategoriHandler.GetByID)

	// Productos: lecturas públicas, mutaciones y export super_admin|staff
	productHandler := NewProductHandler(deps.ProductUC, deps.ExportUC)
	products := api.Group("/products")
	products.Get("/", optional, productHandler.List)
	products.Get("/search", optional, productHandler.Search)
	products.Get("/export/pdf", adminAuth, anyAdmin, productHandler.ExportPDF)
	products.Post("/", adminAuth, anyAdmin, productHandler.Create)
	products.Put("/:id", adminAuth, anyAdmin, productHandler.Update)
	products.Patch("/:id/status", adminAuth, anyAdmin, productHandler.SetStatus)
	products.Delete("/:id", adminAuth, anyAdmin, productHandler.Delete)
	products.Get("/:id", optional, productHandler.GetByID)

	// Sliders: lecturas públicas, mutaciones super_admin|staff
	sliderHandler := NewSliderHandler(deps.SliderUC)
	sliders := api.Group("/sliders")
	sliders.Get("/", optional, sliderHandler.List)
	sliders.Get("/search", optional, sliderHandler.Search)
	sliders.Get("/active", sliderHandler.ListActive)
	sliders.Post("/", adminAuth, anyAdmin, sliderHandler.Create)
	sliders.Put("/:id", adminAuth, anyAdmin, sliderHandler.Update)
	sliders.Patch("/:id/status", adminAuth, anyAdmin, sliderHandler.SetStatus)
	sliders.Delete("/:id", adminAuth, anyAdmin, sliderHandler.Delete)
	sliders.Get("/:id", optional, sliderHandler.GetByID)

	// Tallas y colores (dato maestro, super_admin|staff)
	sizeHandler := NewSizeHandler(deps.SizeUC)
	sizes := api.Group("/sizes", adminAuth, anyAdmin)
	sizes.Post("/", sizeHandler.Create)
	sizes.Get("/", sizeHandler.List)
	sizes.Get("/search", sizeHandler.Search)
	sizes.Get("/:id/colors", sizeHandler.ListColors)
	sizes.Get("/:id", sizeHandler.GetByID)
	sizes.Put("/:id", sizeHandler.Update)
	sizes.Patch("/:id/status", sizeHandler.SetStatus)
	sizes.Delete("/:id", sizeHandler.Delete)

	colorHandler := NewColorHandler(deps.ColorUC)
	colors := api.Group("/colors", adminAuth, anyAdmin)
	colors.Post("/", colorHandler.Create)
	colors.Get("/", colorHandler.List)
	colors.Get("/search", colorHandler.Search)
	colors.Get("/:id", colorHandler.GetByID)
	colors.Put("/:id", colorHandler.Update)
	colors.Patch("/:id/status", colorHandler.SetStatus)
	colors.Delete("/:id", colorHandler.Delete)

	// Cupones (super_admin|staff)
	kuponHandler := NewKuponHandler(deps.KuponUC)
	kupons := api.Group("/kupons", adminAuth, anyAdmin)
	kupons.Post("/", kuponHandler.Create)
	kupons.Get("/", kuponHandler.List)
	kupons.Get("/search", kuponHandler.Search)
	kupons.Get("/active", kuponHandler.ListActive)
	kupons.Post("/redeem", kuponHandler.Redeem)
	kupons.Get("/:id", kuponHandler.GetByID)
	kupons.Put("/:id", kuponHandler.Update)
	kupons.Patch("/:id/status", kuponHandler.SetStatus)
	kupons.Delete("/:id", kuponHandler.Delete)
}
