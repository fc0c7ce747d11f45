package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/bangladiet/backend/internal/repository"
	"github.com/pageza/bangladiet/backend/internal/service"
	"github.com/pageza/bangladiet/backend/internal/testhelpers"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// memoryBlacklist is an in-process TokenBlacklist.
type memoryBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryBlacklist() *memoryBlacklist {
	return &memoryBlacklist{revoked: map[string]time.Duration{}}
}

func (b *memoryBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[tokenID] = ttl
	return nil
}

func (b *memoryBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.revoked[tokenID]
	return ok, nil
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	return repository.NewStore(testhelpers.SetupSQLiteDB(t))
}

// noonUTC is 2024-05-01 12:00 UTC, which is already 2024-05-02 in
// Pacific/Auckland and still 2024-05-01 in Asia/Dhaka.
var noonUTC = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestCalendar() *service.Calendar {
	return service.NewCalendar(fixedClock{noonUTC}, time.UTC)
}

func newStoreFor(db *gorm.DB) *repository.Store {
	return repository.NewStore(db)
}
