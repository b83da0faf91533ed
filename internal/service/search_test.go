package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/target/marketplace-console/internal/domain/auth"
	"github.com/target/marketplace-console/internal/domain/model"
	apperrors "github.com/target/marketplace-console/internal/errors"
	"github.com/target/marketplace-console/internal/mocks"
	"github.com/target/marketplace-console/internal/testutil"
)

func TestSearchService_TypingTriggersOneFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectoryBackend(ctrl)
	svc := NewSearchService(SearchServiceOptions{Directory: directory, Debounce: 150 * time.Millisecond})
	t.Cleanup(svc.Close)
	admin := testutil.AdminSession("s-admin")

	directory.EXPECT().ListContractors(gomock.Any(), model.ListOptions{Search: "contractor", Limit: searchResultLimit}).
		Return(&model.Page[model.Contractor]{
			Items: []model.Contractor{{ContractorID: "c-1", BusinessName: "Contractor Co"}},
			Total: 1,
		}, nil).
		Times(1)

	word := "contractor"
	var wg sync.WaitGroup
	results := make([]*SearchHits, len(word))
	for i := 1; i <= len(word); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hits, err := svc.Search(context.Background(), &admin, SearchContractors, word[:i])
			assert.NoError(t, err)
			results[i-1] = hits
		}(i)
		time.Sleep(20 * time.Millisecond)
	}
	wg.Wait()

	for _, hits := range results {
		require.NotNil(t, hits)
		assert.Equal(t, "contractor", hits.Query)
		assert.Equal(t, 1, hits.Total)
	}
}

func TestSearchService_CachesAcrossBursts(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectoryBackend(ctrl)
	cache := newFakeSearchCache()
	svc := NewSearchService(SearchServiceOptions{
		Directory: directory,
		Cache:     cache,
		Debounce:  10 * time.Millisecond,
		CacheTTL:  time.Minute,
	})
	t.Cleanup(svc.Close)
	admin := testutil.AdminSession("s-admin")

	directory.EXPECT().ListUsers(gomock.Any(), gomock.Any()).
		Return(&model.Page[model.User]{Items: []model.User{{ID: "u-1", Email: "ann@example.com"}}, Total: 1}, nil).
		Times(1)

	for range 2 {
		hits, err := svc.Search(context.Background(), &admin, SearchUsers, "ann")
		require.NoError(t, err)
		require.Len(t, hits.Users, 1)
	}
}

func TestSearchService_CacheIsPerRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectoryBackend(ctrl)
	cache := newFakeSearchCache()
	svc := NewSearchService(SearchServiceOptions{
		Directory: directory,
		Cache:     cache,
		Debounce:  10 * time.Millisecond,
		CacheTTL:  time.Minute,
	})
	t.Cleanup(svc.Close)
	admin := testutil.AdminSession("s-admin")
	customer := testutil.CustomerSession("s-cust", "cust-1")

	directory.EXPECT().ListContractors(gomock.Any(), gomock.Any()).
		Return(&model.Page[model.Contractor]{Items: []model.Contractor{{ContractorID: "c-1"}}, Total: 1}, nil).
		Times(2)

	for _, sess := range []*domainauth.Session{&admin, &customer, &admin} {
		hits, err := svc.Search(context.Background(), sess, SearchContractors, "tiler")
		require.NoError(t, err)
		require.Len(t, hits.Contractors, 1)
	}
	assert.Len(t, cache.data, 2)
	assert.NotEqual(t,
		cacheKey(domainauth.RoleAdmin, SearchContractors, "tiler"),
		cacheKey(domainauth.RoleCustomer, SearchContractors, "tiler"))
}

func TestSearchService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	directory := mocks.NewMockDirectoryBackend(ctrl)
	svc := NewSearchService(SearchServiceOptions{Directory: directory, Debounce: 10 * time.Millisecond})
	t.Cleanup(svc.Close)

	_, err := svc.Search(context.Background(), nil, "jobs", "x")
	assert.Equal(t, "field", apperrors.GetField(err))

	directory.EXPECT().ListContractors(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
	_, err = svc.Search(context.Background(), nil, SearchContractors, "tiler")
	assert.Equal(t, apperrors.ErrCodeTimeout, apperrors.GetCode(err))
}

type fakeSearchCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeSearchCache() *fakeSearchCache { return &fakeSearchCache{data: map[string][]byte{}} }

func (f *fakeSearchCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeSearchCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = payload
	return nil
}
