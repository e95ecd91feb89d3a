// Package http expone la API REST sobre Fiber: handlers, middleware de auth
// y registro de rutas.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-compras/internal/application/auth"
	"github.com/tu-usuario/gestion-compras/internal/application/ports"
	"github.com/tu-usuario/gestion-compras/internal/application/usecase"
	"github.com/tu-usuario/gestion-compras/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrderUC     *usecase.OrderUseCase
	InvoiceUC   *usecase.InvoiceUseCase
	AuthUC      *auth.AuthUseCase
	Storage     ports.DocumentStorage
	Extractor   ports.DocumentExtractor
	PDF         ports.PDFGenerator
	JWTSecret   string
	MaxUploadMB int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Órdenes de compra (protegido)
	ordenes := protected.Group("/ordenes-compra")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.InvoiceUC, deps.PDF)
	ordenes.Post("/", orderHandler.Create)
	ordenes.Get("/", orderHandler.List)
	ordenes.Get("/:id", orderHandler.GetByID)
	ordenes.Put("/:id", orderHandler.Update)
	ordenes.Delete("/:id", RequireRole(entity.RoleAdmin), orderHandler.Delete)
	ordenes.Get("/:id/facturas", orderHandler.ListInvoices)
	ordenes.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Facturas (protegido). Las rutas fijas van antes de /:id.
	facturas := protected.Group("/facturas")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.OrderUC, deps.PDF)
	facturas.Post("/", invoiceHandler.Create)
	facturas.Get("/", invoiceHandler.List)
	facturas.Get("/vencidas", invoiceHandler.ListVencidas)
	facturas.Get("/resumen", invoiceHandler.Resumen)
	facturas.Get("/:id", invoiceHandler.GetByID)
	facturas.Put("/:id", invoiceHandler.Update)
	facturas.Post("/:id/pagar", invoiceHandler.MarcarPagada)
	facturas.Delete("/:id", RequireRole(entity.RoleAdmin), invoiceHandler.Delete)
	facturas.Get("/:id/pdf", invoiceHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.OrderUC, deps.InvoiceUC)
	dashboard.Get("/resumen", dashboardHandler.Resumen)

	// Documentos adjuntos (protegido)
	documentos := protected.Group("/documentos")
	uploadHandler := NewUploadHandler(deps.Storage, deps.Extractor, deps.OrderUC, deps.InvoiceUC, deps.MaxUploadMB)
	documentos.Post("/", uploadHandler.Upload)
	documentos.Post("/extraer", uploadHandler.Extract)
}
