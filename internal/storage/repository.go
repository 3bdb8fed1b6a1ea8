// ABOUTME: Store interfaces for accounts and stats.
// ABOUTME: Implemented by *DB; consumers depend on these for testing.
package storage

import (
	"context"

	"github.com/harperreed/fitness/internal/models"
)

// UserStore persists registered accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// StatsStore persists stats snapshots.
type StatsStore interface {
	SeedStats(ctx context.Context, seed models.StatsSnapshot) (bool, error)
	CurrentStats(ctx context.Context) (*models.StatsSnapshot, error)
	UpdateActivity(ctx context.Context, id int64, u models.ActivityUpdate) (*models.StatsSnapshot, error)
}

var (
	_ UserStore  = (*DB)(nil)
	_ StatsStore = (*DB)(nil)
)
