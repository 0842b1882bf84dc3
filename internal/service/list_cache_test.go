package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/imtti/imtti-api/internal/dto"
	"github.com/imtti/imtti-api/internal/models"
	"github.com/imtti/imtti-api/internal/repository"
)

type countingCenterRepo struct {
	repository.CenterRepository
	lists int
}

func (r *countingCenterRepo) List(ctx context.Context) ([]models.Center, error) {
	r.lists++
	return r.CenterRepository.List(ctx)
}

func TestListCacheServesUntilWrite(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	store := newTestStore(t)
	repo := &countingCenterRepo{CenterRepository: repository.NewCenterRepository(store)}
	cache := NewListCache(redisClient, time.Minute, testLogger())
	svc := NewCenterService(repo, testValidator(), cache, testLogger())
	ctx := context.Background()

	_, err = svc.Create(ctx, dto.CenterCreateRequest{Name: "Alpha", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	second, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.lists)
	require.Len(t, second, 1)
	require.Equal(t, first[0].ID, second[0].ID)
	require.True(t, server.Exists(entryKey(1, "centers")))

	_, err = svc.Create(ctx, dto.CenterCreateRequest{Name: "Beta", Email: "b@x.com", Password: "p"})
	require.NoError(t, err)
	generation, err := server.Get(generationKey)
	require.NoError(t, err)
	require.Equal(t, "2", generation)

	third, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repo.lists)
	require.Len(t, third, 2)
	require.Equal(t, "Beta", third[0].Name)
}

func TestListCacheDisabledWithoutClient(t *testing.T) {
	cache := NewListCache(nil, 0, testLogger())
	var dest []models.Center
	_, hit := cache.get(context.Background(), "centers", &dest)
	require.False(t, hit)
	cache.set(context.Background(), "centers", 0, dest)
	cache.invalidate(context.Background())

	var nilCache *ListCache
	_, hit = nilCache.get(context.Background(), "centers", &dest)
	require.False(t, hit)
}

func TestListCacheDropsRowsReadBeforeInvalidation(t *testing.T) {
	server := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	cache := NewListCache(redisClient, time.Minute, testLogger())
	ctx := context.Background()

	var dest []models.Center
	generation, hit := cache.get(ctx, "centers", &dest)
	require.False(t, hit)

	// a write lands while the list is still being read from the store
	cache.invalidate(ctx)
	cache.set(ctx, "centers", generation, []models.Center{{ID: 1, Name: "Stale"}})

	_, hit = cache.get(ctx, "centers", &dest)
	require.False(t, hit)

	fresh := []models.Center{{ID: 2, Name: "Fresh"}, {ID: 1, Name: "Stale"}}
	generation, _ = cache.get(ctx, "centers", &dest)
	cache.set(ctx, "centers", generation, fresh)

	dest = nil
	_, hit = cache.get(ctx, "centers", &dest)
	require.True(t, hit)
	require.Len(t, dest, 2)
	require.Equal(t, "Fresh", dest[0].Name)
}
