// pkg/client/coordinator_test.go
package client

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"swipeshop-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	fn func(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}

func (f *fakeBackend) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
	return f.fn(ctx, req)
}

func searchRequest(query string) *models.SearchRequest {
	return &models.SearchRequest{Query: query, CategoryID: "home", CategoryName: "Home", UserID: "u1"}
}

func TestCoordinator_Search_CachesResults(t *testing.T) {
	var calls atomic.Int32
	backend := &fakeBackend{fn: func(_ context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
		calls.Add(1)
		return &models.SearchResult{Query: req.Query, OptimizedQuery: "opt"}, nil
	}}

	c := NewCoordinator(backend)

	first, err := c.Search(context.Background(), "main", searchRequest("mug"))
	require.NoError(t, err)
	second, err := c.Search(context.Background(), "main", searchRequest("mug"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)

	// A different query is a different cache key.
	_, err = c.Search(context.Background(), "main", searchRequest("lamp"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestCoordinator_Search_CancelsSupersededSearch(t *testing.T) {
	firstStarted := make(chan struct{})
	var calls atomic.Int32
	backend := &fakeBackend{fn: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-ctx.Done() // hangs until the coordinator cancels it
			return nil, ctx.Err()
		}
		return &models.SearchResult{Query: req.Query}, nil
	}}

	c := NewCoordinator(backend)

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "main", searchRequest("mug"))
		firstErr <- err
	}()
	<-firstStarted

	result, err := c.Search(context.Background(), "main", searchRequest("lamp"))
	require.NoError(t, err)
	assert.Equal(t, "lamp", result.Query)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded search never returned")
	}
}

func TestCoordinator_Search_SurfacesAreIndependent(t *testing.T) {
	blocked := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	backend := &fakeBackend{fn: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error) {
		if calls.Add(1) == 1 {
			close(blocked)
			select {
			case <-release:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return &models.SearchResult{Query: req.Query}, nil
	}}

	c := NewCoordinator(backend)

	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "discover", searchRequest("mug"))
		firstErr <- err
	}()
	<-blocked

	// A search on another surface must not cancel the first.
	_, err := c.Search(context.Background(), "category", searchRequest("lamp"))
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-firstErr)
}

func TestCoordinator_Cancel(t *testing.T) {
	started := make(chan struct{})
	backend := &fakeBackend{fn: func(ctx context.Context, _ *models.SearchRequest) (*models.SearchResult, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}}

	c := NewCoordinator(backend)

	errCh := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "main", searchRequest("mug"))
		errCh <- err
	}()
	<-started

	c.Cancel("main")

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled search never returned")
	}
}
