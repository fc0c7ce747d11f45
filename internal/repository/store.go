package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that share one database handle, so that a
// transaction can span all of them.
type Store struct {
	db *gorm.DB

	Users          UserRepository
	FoodLogs       FoodLogRepository
	DailyNutrition DailyNutritionRepository
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:             db,
		Users:          NewUserRepository(db),
		FoodLogs:       NewFoodLogRepository(db),
		DailyNutrition: NewDailyNutritionRepository(db),
	}
}

// WithTransaction executes fn with a store bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewStore(tx))
	})
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
