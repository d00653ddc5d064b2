package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"avatarforge/cmd/fx/admin_fx"
	"avatarforge/cmd/fx/aigen_fx"
	"avatarforge/cmd/fx/avatars_fx"
	"avatarforge/cmd/fx/config_fx"
	"avatarforge/cmd/fx/controllers_fx"
	"avatarforge/cmd/fx/credits_fx"
	"avatarforge/cmd/fx/db_fx"
	"avatarforge/cmd/fx/identity_fx"
	"avatarforge/cmd/fx/mail_fx"
	"avatarforge/cmd/fx/users_fx"
	"avatarforge/internal/api/controllers"
	"avatarforge/internal/services"
	"avatarforge/pkg/config"
	"avatarforge/pkg/identity"
	"avatarforge/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		identity_fx.Module,
		users_fx.Module,
		credits_fx.Module,
		avatars_fx.Module,
		aigen_fx.Module,
		mail_fx.Module,
		admin_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at :%s", cfg.Port)
				if err := engine.Run(":" + cfg.Port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	verifier *identity.Verifier,
	userService services.UserServiceInterface,
	accountController *controllers.AccountController,
	avatarController *controllers.AvatarController,
	generationController *controllers.GenerationController,
	adminController *controllers.AdminController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, verifier, userService,
		accountController, avatarController, generationController, adminController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	verifier *identity.Verifier,
	userService services.UserServiceInterface,
	accountController *controllers.AccountController,
	avatarController *controllers.AvatarController,
	generationController *controllers.GenerationController,
	adminController *controllers.AdminController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Every route below requires a valid session token; the account middleware
	// provisions the row on first contact.
	authed := r.Group("/")
	authed.Use(middleware.IdentityMiddleware(verifier))
	authed.Use(middleware.AccountMiddleware(userService))

	authed.GET("/me", accountController.Me)
	authed.GET("/credits", accountController.Credits)
	authed.GET("/credits/history", accountController.CreditHistory)

	// Product features sit behind the approval gate as well.
	gated := authed.Group("/")
	gated.Use(middleware.GateMiddleware())

	gated.POST("/generate", generationController.Generate)
	gated.POST("/generate-section", generationController.GenerateSection)
	gated.POST("/generate-image", generationController.GenerateImage)

	gated.GET("/avatars", avatarController.List)
	gated.PUT("/avatars/:id", avatarController.Update)
	gated.DELETE("/avatars/:id", avatarController.Delete)

	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.AdminMiddleware())

	adminGroup.GET("/users", adminController.ListUsers)
	adminGroup.POST("/users/bulk", adminController.BulkCreateUsers)
	adminGroup.POST("/users/:id/credits", adminController.AdjustCredits)
	adminGroup.GET("/users/:id/credits/history", adminController.CreditHistory)
	adminGroup.PATCH("/users/:id/active", adminController.SetActive)
	adminGroup.PATCH("/users/:id/authenticated", adminController.SetAuthenticated)
	adminGroup.PATCH("/users/:id/admin", adminController.SetAdmin)
	adminGroup.DELETE("/users/:id", adminController.DeleteUser)
}
