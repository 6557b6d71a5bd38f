package catalog

import (
	"catalog-service/core/version"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the catalog read endpoints into the feature loader.
type Feature struct {
	db       *gorm.DB
	versions *version.Service
	logger   *zap.Logger
}

// NewFeature creates the catalog feature.
func NewFeature(db *gorm.DB, versions *version.Service, logger *zap.Logger) *Feature {
	return &Feature{db: db, versions: versions, logger: logger}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled reports whether the feature can serve; it needs the database.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the catalog routes.
func (f *Feature) Load(app fiber.Router) error {
	svc := NewService(f.db, f.logger)
	h := NewHandler(svc, f.versions, f.logger)
	h.RegisterRoutes(app)
	return nil
}
