package sync

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"catalog-service/feature/catalog/models"
	"catalog-service/feature/sync/upstream"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine merges fetched feed records into local storage with find-or-create
// and update-if-changed semantics. It is the only writer of the catalog
// tables. Re-running it against unchanged upstream data is a no-op.
type Engine struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine.
func NewEngine(db *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// ReconcileCategories finds or creates a category per upstream name and
// returns the name → id mapping used to resolve product foreign keys. Blank
// names, including non-string upstream elements the client decayed to "",
// are counted as skips. Categories are never deleted or renamed: an upstream
// rename orphans the old row and creates a fresh one.
// A storage failure is fatal and aborts the run.
func (e *Engine) ReconcileCategories(ctx context.Context, names []string, res *Result) (map[string]uint, error) {
	categories := make(map[string]uint, len(names))
	created := 0

	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("category[%d]: blank or non-string name skipped", i))
			continue
		}
		if _, ok := categories[name]; ok {
			continue
		}

		var cat models.Category
		err := e.db.WithContext(ctx).Where("name = ?", name).First(&cat).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cat = models.Category{Name: name}
			if err := e.db.WithContext(ctx).Create(&cat).Error; err != nil {
				return nil, fmt.Errorf("failed to create category %q: %w", name, err)
			}
			created++
		} else if err != nil {
			return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
		}

		categories[name] = cat.ID
	}

	if created > 0 {
		e.logger.Info("categories reconciled", zap.Int("created", created), zap.Int("total", len(categories)))
	}

	return categories, nil
}

// ReconcileProducts applies minimal create/update/skip operations per raw
// record. Validation failures are absorbed as skips with a diagnostic; only
// a storage failure aborts the batch.
func (e *Engine) ReconcileProducts(ctx context.Context, raw []upstream.RawProduct, categories map[string]uint, res *Result) error {
	for i, p := range raw {
		desired, reason := normalize(p, categories)
		if reason != "" {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("product[%d]: %s", i, reason))
			continue
		}

		var existing models.Product
		err := e.db.WithContext(ctx).Where("external_id = ?", desired.ExternalID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := e.db.WithContext(ctx).Create(desired).Error; err != nil {
				return fmt.Errorf("failed to create product %d: %w", desired.ExternalID, err)
			}
			res.Imported++
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up product %d: %w", desired.ExternalID, err)
		}

		if !applyChanges(&existing, desired) {
			res.Skipped++
			continue
		}
		if err := e.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return fmt.Errorf("failed to update product %d: %w", desired.ExternalID, err)
		}
		res.Updated++
	}

	return nil
}

// normalize validates a raw record and builds the typed payload. It returns
// a non-empty reason when the record must be skipped.
func normalize(p upstream.RawProduct, categories map[string]uint) (*models.Product, string) {
	if p.ID == nil {
		return nil, "missing or non-numeric external_id"
	}
	if p.Title == nil || strings.TrimSpace(*p.Title) == "" {
		return nil, "missing or blank title"
	}
	if p.Price == nil {
		return nil, "missing or non-numeric price"
	}
	if p.Category == nil || strings.TrimSpace(*p.Category) == "" {
		return nil, "missing or blank category"
	}
	categoryID, ok := categories[*p.Category]
	if !ok {
		return nil, fmt.Sprintf("unknown category %q", *p.Category)
	}

	desired := &models.Product{
		ExternalID: *p.ID,
		CategoryID: categoryID,
		Title:      *p.Title,
		Price:      math.Round(*p.Price*100) / 100,
	}
	if p.Description != nil {
		desired.Description = *p.Description
	}
	if p.Image != nil {
		desired.ImageURL = *p.Image
	}
	if p.Rating != nil {
		desired.RatingRate = p.Rating.Rate
		desired.RatingCount = p.Rating.Count
	}
	return desired, ""
}

// applyChanges copies differing fields from desired onto existing and
// reports whether anything changed. The comparison is exact-value equality
// per declared attribute, one field per line, so a new model field cannot be
// silently ignored.
func applyChanges(existing *models.Product, desired *models.Product) bool {
	changed := false
	if existing.CategoryID != desired.CategoryID {
		existing.CategoryID = desired.CategoryID
		changed = true
	}
	if existing.Title != desired.Title {
		existing.Title = desired.Title
		changed = true
	}
	if existing.Description != desired.Description {
		existing.Description = desired.Description
		changed = true
	}
	if existing.Price != desired.Price {
		existing.Price = desired.Price
		changed = true
	}
	if existing.ImageURL != desired.ImageURL {
		existing.ImageURL = desired.ImageURL
		changed = true
	}
	if !floatPtrEqual(existing.RatingRate, desired.RatingRate) {
		existing.RatingRate = desired.RatingRate
		changed = true
	}
	if !intPtrEqual(existing.RatingCount, desired.RatingCount) {
		existing.RatingCount = desired.RatingCount
		changed = true
	}
	return changed
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func intPtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
