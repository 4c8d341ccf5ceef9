package dummydb

import (
	"context"

	"github.com/heliumhq/dashboard-api/core/activity"
)

type usageRepository struct {
	db *usageTable
}

var _ activity.Repository = (*usageRepository)(nil) // interface compliance check

func NewUsageRepository(db *DB) activity.Repository {
	return &usageRepository{db: db.usage}
}

func (repo *usageRepository) QueryEvents(ctx context.Context) ([]activity.Event, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	events := make([]activity.Event, len(repo.db.events))
	copy(events, repo.db.events)
	return events, nil
}
