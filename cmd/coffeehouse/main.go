package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-redis/redis/v8"

	"github.com/copperkettle/coffeehouse/internal/auth"
	"github.com/copperkettle/coffeehouse/internal/config"
	"github.com/copperkettle/coffeehouse/internal/database"
	"github.com/copperkettle/coffeehouse/internal/routes"
	"github.com/copperkettle/coffeehouse/internal/upload"
	"github.com/copperkettle/coffeehouse/internal/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Open(cfg.PostgresURL())
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})

	users := database.NewUserStore(db)
	sessions := auth.NewSessionManager(redisClient)
	verifier := auth.NewVerifier(users)
	gate := auth.NewGate(sessions, users)

	uploads, err := upload.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("failed to prepare uploads dir: %v", err)
	}

	renderer, err := views.New(cfg.WebDir)
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(gate.WithUser)

	routes.NewAuthRoutes(users, sessions, verifier, renderer).Register(r)
	routes.NewPageRoutes(renderer).Register(r)
	routes.NewProfileRoutes(users, uploads, renderer).Register(r)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploads.Dir()))))

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
