package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/production-board/internal/audit"
	"github.com/BruksfildServices01/production-board/internal/config"
	dbpkg "github.com/BruksfildServices01/production-board/internal/db"
	"github.com/BruksfildServices01/production-board/internal/infra/cache"
	"github.com/BruksfildServices01/production-board/internal/infra/generative"
	"github.com/BruksfildServices01/production-board/internal/infra/mailer"
	infraRepo "github.com/BruksfildServices01/production-board/internal/infra/repository"
	"github.com/BruksfildServices01/production-board/internal/infra/storage"
	"github.com/BruksfildServices01/production-board/internal/routes"
	"github.com/BruksfildServices01/production-board/internal/thumbnail"
	"github.com/BruksfildServices01/production-board/internal/validators"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// ------------------------------
	// Session cache
	// ------------------------------
	store := cache.NewMemory()
	if cfg.RedisURL != "" {
		rs, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		store = rs
	} else {
		log.Println("REDIS_URL not set, sessions live in memory")
	}

	// ------------------------------
	// Thumbnails
	// ------------------------------
	var objects storage.ObjectStore
	if cfg.S3.Enabled() {
		objects = storage.NewS3(cfg.S3)
	} else {
		log.Println("S3_BUCKET not set, thumbnails are stored inline")
	}

	// ------------------------------
	// Generative model
	// ------------------------------
	var generator generative.Generator = generative.Disabled{}
	if cfg.Gemini.APIKey != "" {
		g, err := generative.NewGemini(ctx, cfg.Gemini)
		if err != nil {
			log.Fatalf("failed to init gemini: %v", err)
		}
		generator = g
	} else {
		log.Println("GEMINI_API_KEY not set, AI generation disabled")
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Boards:       infraRepo.NewBoardGormRepository(db),
		Clients:      infraRepo.NewClientGormRepository(db),
		Profiles:     infraRepo.NewProfileGormRepository(db),
		Appointments: infraRepo.NewAppointmentGormRepository(db),
		AuditLogs:    infraRepo.NewAuditGormRepository(db),
		AuditSink:    audit.New(db),
		Cache:        store,
		Mailer:       mailer.New(cfg.SMTP),
		Generator:    generator,
		Thumbnails:   thumbnail.New(objects),
		CheckEmail:   validators.IsEmailDomainValid,
	})

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
