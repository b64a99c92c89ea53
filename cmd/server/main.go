package main

import (
	"log"

	"github.com/Barrelito/pannben-75/internal/config"
	"github.com/Barrelito/pannben-75/internal/db"
	"github.com/Barrelito/pannben-75/internal/router"
	"github.com/Barrelito/pannben-75/internal/scheduler"
	"github.com/Barrelito/pannben-75/internal/service"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(cfg.SeedUserName, cfg.SeedPassword); err != nil {
		log.Fatalf("failed to ensure seed user: %v", err)
	}

	if err := service.NewDietPlanService(db.DB).EnsureDefaults(); err != nil {
		log.Fatalf("failed to seed diet plans: %v", err)
	}

	sched, err := scheduler.Start(db.DB)
	if err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Printf("scheduler shutdown: %v", err)
		}
	}()

	r := router.SetupRouter(db.DB, cfg.SessionSecret, cfg.UploadDir, cfg.UploadURLPath)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
