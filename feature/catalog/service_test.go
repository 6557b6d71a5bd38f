package catalog

import (
	"context"
	"testing"

	"catalog-service/core/database"
	"catalog-service/feature/catalog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seededDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	books := models.Category{Name: "books"}
	games := models.Category{Name: "games"}
	empty := models.Category{Name: "empty shelf"}
	require.NoError(t, db.Create(&books).Error)
	require.NoError(t, db.Create(&games).Error)
	require.NoError(t, db.Create(&empty).Error)

	products := []models.Product{
		{ExternalID: 1, CategoryID: books.ID, Title: "Cheap Novel", Description: "a quiet story", Price: 5.00, ImageURL: "u1"},
		{ExternalID: 2, CategoryID: books.ID, Title: "Big Atlas", Description: "maps", Price: 60.00, ImageURL: "u2"},
		{ExternalID: 3, CategoryID: games.ID, Title: "Puzzle Box", Description: "a quiet puzzle", Price: 25.00, ImageURL: "u3"},
	}
	require.NoError(t, db.Create(&products).Error)
	return db
}

func TestListCategories_CountsAndOrder(t *testing.T) {
	svc := NewService(seededDB(t), zap.NewNop())

	cats, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 3)

	// Ordered by name; empty categories included with zero count.
	assert.Equal(t, "books", cats[0].Name)
	assert.Equal(t, int64(2), cats[0].ProductsCount)
	assert.Equal(t, "empty shelf", cats[1].Name)
	assert.Equal(t, int64(0), cats[1].ProductsCount)
	assert.Equal(t, "games", cats[2].Name)
	assert.Equal(t, int64(1), cats[2].ProductsCount)
}

func TestListProducts_Filters(t *testing.T) {
	db := seededDB(t)
	svc := NewService(db, zap.NewNop())
	ctx := context.Background()

	var books models.Category
	require.NoError(t, db.Where("name = ?", "books").First(&books).Error)

	t.Run("by category", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{CategoryID: int64(books.ID)})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.Total)
	})

	t.Run("free text over title and description", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{Q: "quiet"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.Total)
	})

	t.Run("price range", func(t *testing.T) {
		min, max := 10.0, 30.0
		page, err := svc.ListProducts(ctx, ProductQuery{MinPrice: &min, MaxPrice: &max})
		require.NoError(t, err)
		require.Equal(t, int64(1), page.Pagination.Total)
		assert.Equal(t, "Puzzle Box", page.Data[0].Title)
	})
}

func TestListProducts_SortAndPagination(t *testing.T) {
	svc := NewService(seededDB(t), zap.NewNop())
	ctx := context.Background()

	t.Run("price ascending", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{Sort: "price_asc"})
		require.NoError(t, err)
		require.Len(t, page.Data, 3)
		assert.Equal(t, "Cheap Novel", page.Data[0].Title)
		assert.Equal(t, "Big Atlas", page.Data[2].Title)
	})

	t.Run("default is newest first", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Data[0].ExternalID)
	})

	t.Run("unknown sort falls back", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{Sort: "bogus"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Data[0].ExternalID)
	})

	t.Run("pages", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, ProductQuery{Sort: "title_asc", PerPage: 2, Page: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.LastPage)
		assert.Equal(t, 2, page.Pagination.CurrentPage)
		require.Len(t, page.Data, 1)
		assert.Equal(t, "Puzzle Box", page.Data[0].Title)
	})
}

func TestGetProduct(t *testing.T) {
	svc := NewService(seededDB(t), zap.NewNop())

	p, err := svc.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Puzzle Box", p.Title)
	require.NotNil(t, p.Category)
	assert.Equal(t, "games", p.Category.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc := NewService(seededDB(t), zap.NewNop())

	_, err := svc.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetStats(t *testing.T) {
	svc := NewService(seededDB(t), zap.NewNop())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalProducts)
	assert.Equal(t, int64(3), stats.TotalCategories)
	require.NotNil(t, stats.MinPrice)
	require.NotNil(t, stats.MaxPrice)
	require.NotNil(t, stats.AvgPrice)
	assert.Equal(t, 5.00, *stats.MinPrice)
	assert.Equal(t, 60.00, *stats.MaxPrice)
	assert.Equal(t, 30.00, *stats.AvgPrice)
}

func TestGetStats_EmptyCatalog(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))
	svc := NewService(db, zap.NewNop())

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalProducts)
	assert.Nil(t, stats.MinPrice)
	assert.Nil(t, stats.MaxPrice)
	assert.Nil(t, stats.AvgPrice)
}
