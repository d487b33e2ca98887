package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tarjetas-api/internal/application/auth"
	"github.com/jhoicas/Tarjetas-api/internal/application/card"
	"github.com/jhoicas/Tarjetas-api/internal/application/transfer"
	"github.com/jhoicas/Tarjetas-api/internal/application/user"
	"github.com/jhoicas/Tarjetas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	CardUC     *card.CardUseCase
	TransferUC *transfer.TransferUseCase
	UserUC     *user.UserUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Los grupos protegidos exigen Bearer
// Token; el RBAC grueso va en middleware y las reglas finas (dueño vs
// ADMIN) en los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cards (protegido)
	cards := protected.Group("/cards")
	cardHandler := NewCardHandler(deps.CardUC)
	cards.Get("/", RequireRole(entity.RoleUser, entity.RoleAdmin), cardHandler.List)
	cards.Post("/", RequireRole(entity.RoleAdmin), cardHandler.Create)
	cards.Get("/:id", RequireRole(entity.RoleUser, entity.RoleAdmin), cardHandler.GetByID)
	cards.Put("/:id", RequireRole(entity.RoleAdmin), cardHandler.Update)
	cards.Delete("/:id", RequireRole(entity.RoleAdmin), cardHandler.Delete)
	cards.Post("/:id/block", RequireRole(entity.RoleUser), cardHandler.Block)
	cards.Post("/:id/activate", RequireRole(entity.RoleAdmin), cardHandler.Activate)

	// Transfers (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", RequireRole(entity.RoleUser), transferHandler.Create)

	// Users (protegido, solo ADMIN)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", RequireRole(entity.RoleAdmin), userHandler.List)
	users.Post("/", RequireRole(entity.RoleAdmin), userHandler.Create)
}
