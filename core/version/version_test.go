package version

import (
	"context"
	"sync"
	"testing"

	"catalog-service/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) *Service {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Counter{}))
	return NewService(db)
}

func TestGet_InitializesToOne(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	v, err := svc.Get(ctx, CatalogKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// The default is persisted, not recomputed.
	v, err = svc.Get(ctx, CatalogKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestBump_IncrementsByOne(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	v, err := svc.Bump(ctx, CatalogKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), v)

	v, err = svc.Bump(ctx, CatalogKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v)
}

func TestKinds_AreIndependent(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.Bump(ctx, CatalogKind)
	assert.NoError(t, err)

	v, err := svc.Get(ctx, StatsKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestSet_Overwrites(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Set(ctx, StatsKind, 42))

	v, err := svc.Get(ctx, StatsKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = svc.Bump(ctx, StatsKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(43), v)
}

func TestBump_SerializesConcurrentWriters(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Bump(ctx, CatalogKind)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := svc.Get(ctx, CatalogKind)
	assert.NoError(t, err)
	assert.Equal(t, int64(1+n), v)
}
