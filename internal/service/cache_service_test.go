package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/photographer-catalog-api/internal/models"
	appErrors "github.com/noah-isme/photographer-catalog-api/pkg/errors"
)

type memoryCacheRepo struct {
	values  map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (r *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if r.failGet != nil {
		return r.failGet
	}
	raw, ok := r.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.values[key] = raw
	r.ttls[key] = ttl
	return nil
}

func (r *memoryCacheRepo) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(r.values, key)
	}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCacheRepo()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Minute, nil, true)

	var out []models.Photographer
	hit, err := svc.Get(context.Background(), "catalog:snapshot", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, svc.Set(context.Background(), "catalog:snapshot", catalogRecords(), 0))
	assert.Equal(t, time.Minute, repo.ttls["catalog:snapshot"])

	hit, err = svc.Get(context.Background(), "catalog:snapshot", &out)
	require.NoError(t, err)
	assert.True(t, hit)
	require.Len(t, out, 3)
	assert.Equal(t, "Chirag Shah", out[2].Name)

	require.NoError(t, svc.Delete(context.Background(), "catalog:snapshot"))
	hit, _ = svc.Get(context.Background(), "catalog:snapshot", &out)
	assert.False(t, hit)

	assert.Equal(t, 1.0, gatheredValue(t, metrics, "cache_hits_total"))
	assert.Equal(t, 2.0, gatheredValue(t, metrics, "cache_misses_total"))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)

	assert.False(t, svc.Enabled())
	require.NoError(t, svc.Set(context.Background(), "k", "v", time.Second))
	assert.Empty(t, repo.values)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
}

func TestCacheServiceGetError(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.failGet = errors.New("connection refused")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	assert.False(t, hit)
	assert.EqualError(t, err, "connection refused")
}
