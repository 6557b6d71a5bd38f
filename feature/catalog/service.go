package catalog

import (
	"context"
	"math"
	"strings"

	"catalog-service/feature/catalog/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategorySummary is one row of the category listing.
type CategorySummary struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ProductsCount int64  `json:"products_count"`
}

// ProductQuery carries the supported product listing filters.
type ProductQuery struct {
	CategoryID int64
	Q          string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	PerPage    int
	Page       int
}

// Pagination describes one page of results.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
}

// ProductPage is a product listing page.
type ProductPage struct {
	Pagination Pagination       `json:"pagination"`
	Data       []models.Product `json:"data"`
}

// Stats holds the aggregate catalog statistics.
type Stats struct {
	TotalProducts   int64    `json:"total_products"`
	TotalCategories int64    `json:"total_categories"`
	MinPrice        *float64 `json:"min_price"`
	MaxPrice        *float64 `json:"max_price"`
	AvgPrice        *float64 `json:"avg_price"`
}

// sortColumns maps the public sort keys to column/direction pairs.
// created_* maps to id: insertion order is creation order.
var sortColumns = map[string]string{
	"price_asc":    "price asc",
	"price_desc":   "price desc",
	"title_asc":    "title asc",
	"title_desc":   "title desc",
	"created_asc":  "id asc",
	"created_desc": "id desc",
}

// Service answers the read-side catalog queries. It never writes: the
// reconciliation engine is the only writer of the catalog tables.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new catalog query service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// ListCategories returns all categories with their product counts, ordered
// by name.
func (s *Service) ListCategories(ctx context.Context) ([]CategorySummary, error) {
	rows := []CategorySummary{}
	err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.id, categories.name, COUNT(products.id) AS products_count").
		Joins("LEFT JOIN products ON products.category_id = categories.id").
		Group("categories.id, categories.name").
		Order("categories.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListProducts returns one page of products matching the query.
func (s *Service) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	tx := s.db.WithContext(ctx).Model(&models.Product{})

	if q.CategoryID > 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if term := strings.TrimSpace(q.Q); term != "" {
		like := "%" + term + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}

	order, ok := sortColumns[q.Sort]
	if !ok {
		order = sortColumns["created_desc"]
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 15
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	products := []models.Product{}
	err := tx.Order(order).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	lastPage := int(math.Ceil(float64(total) / float64(perPage)))
	if lastPage < 1 {
		lastPage = 1
	}

	return &ProductPage{
		Pagination: Pagination{
			Total:       total,
			PerPage:     perPage,
			CurrentPage: page,
			LastPage:    lastPage,
		},
		Data: products,
	}, nil
}

// GetProduct returns one product by its upstream id with its category
// preloaded, or gorm.ErrRecordNotFound when no such product exists.
func (s *Service) GetProduct(ctx context.Context, externalID int64) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("external_id = ?", externalID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetStats returns the aggregate catalog statistics. Price aggregates are
// null while the catalog is empty; the average is rounded to 2 decimals.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&models.Category{}).Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}

	var agg struct {
		MinPrice *float64
		MaxPrice *float64
		AvgPrice *float64
	}
	err := s.db.WithContext(ctx).Model(&models.Product{}).
		Select("MIN(price) AS min_price, MAX(price) AS max_price, AVG(price) AS avg_price").
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}

	stats.MinPrice = agg.MinPrice
	stats.MaxPrice = agg.MaxPrice
	if agg.AvgPrice != nil {
		rounded := math.Round(*agg.AvgPrice*100) / 100
		stats.AvgPrice = &rounded
	}

	return stats, nil
}
