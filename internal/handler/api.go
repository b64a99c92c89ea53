package handler

import (
	"github.com/Barrelito/pannben-75/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	profiles  *service.ProfileService
	logs      *service.DailyLogService
	progress  *service.ProgressService
	diets     *service.DietPlanService
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:        gdb,
		profiles:  service.NewProfileService(gdb),
		logs:      service.NewDailyLogService(gdb),
		progress:  service.NewProgressService(gdb),
		diets:     service.NewDietPlanService(gdb),
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// DB exposes the underlying gorm instance for seed scripts.
func (a *API) DB() *gorm.DB {
	return a.db
}
