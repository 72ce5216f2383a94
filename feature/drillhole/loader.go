package drillhole

import (
	"drill-eda/core/reconcile"
	"drill-eda/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new drillhole feature.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, defaults reconcile.Config) *Feature {
	svc := NewService(client, bucket, logger, db, defaults)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "drillhole"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service, e.g. for a run at startup.
func (f *Feature) Service() *Service {
	return f.service
}
