package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"pinatlas/internal/config"
	"pinatlas/internal/credentials"
	"pinatlas/internal/database"
	"pinatlas/internal/handlers"
	"pinatlas/internal/logic"
	"pinatlas/internal/middleware"
	"pinatlas/internal/validate"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureMapIndexes(db); err != nil {
		log.Printf("map index warning: %v", err)
	}
	if err := database.EnsurePinIndexes(db); err != nil {
		log.Printf("pin index warning: %v", err)
	}

	check := validate.New()
	svc := logic.NewService(db, credentials.NewBcrypt(), check, logic.Policy{
		StrictCollectionTitles: config.AppEnv.StrictCollectionTitles,
		PartialPinUpdate:       config.AppEnv.PartialPinUpdate,
		PrunePinRefs:           config.AppEnv.PrunePinRefs,
	})

	secret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL
	refreshTTL := config.AppEnv.RefreshTokenTTL

	r := gin.Default()

	r.GET("/health", handlers.Health(db))

	r.POST("/auth/register", handlers.Register(svc, db, secret, accessTTL, refreshTTL))
	r.POST("/auth/login", handlers.Login(svc, db, secret, accessTTL, refreshTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, secret, accessTTL, refreshTTL))
	r.POST("/auth/logout", handlers.Logout(db))

	r.GET("/public/maps", handlers.ListPublicMaps(svc))
	r.GET("/maps/:id", middleware.OptionalUserAuth(secret), handlers.GetMap(svc, check))

	me := r.Group("/me")
	me.Use(middleware.UserAuth(secret))
	{
		me.GET("", handlers.GetMe(svc))
		me.PUT("", handlers.UpdateMe(svc))
		me.DELETE("", handlers.DeleteMe(svc))
		me.PUT("/favorite-map", handlers.SetFavoriteMap(svc, check))
		me.DELETE("/favorite-map", handlers.ClearFavoriteMap(svc))
	}

	maps := r.Group("/maps")
	maps.Use(middleware.UserAuth(secret))
	{
		maps.GET("", handlers.ListMyMaps(svc))
		maps.POST("", handlers.CreateMap(svc))
		maps.PUT("/:id", handlers.UpdateMap(svc, check))
		maps.PUT("/:id/visibility", handlers.SetMapVisibility(svc, check))
		maps.DELETE("/:id", handlers.DeleteMap(svc, check))

		maps.POST("/:id/collections", handlers.CreateCollection(svc, check))
		maps.PUT("/:id/collections/:title", handlers.RenameCollection(svc, check))
		maps.DELETE("/:id/collections/:title", handlers.DeleteCollection(svc, check))

		maps.POST("/:id/collections/:title/pins", handlers.CreatePin(svc, check))
	}

	pins := r.Group("/pins")
	pins.Use(middleware.UserAuth(secret))
	{
		pins.PUT("/:id", handlers.UpdatePin(svc, check))
		pins.DELETE("/:id", handlers.DeletePin(svc, check))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
