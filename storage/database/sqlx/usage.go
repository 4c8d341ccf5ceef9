package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core/activity"
)

type usageRow struct {
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type usageRepository struct {
	db *sqlx.DB
}

var _ activity.Repository = (*usageRepository)(nil) // interface compliance check

func NewUsageRepository(db *sqlx.DB) *usageRepository {
	return &usageRepository{db: db}
}

func (repo usageRepository) QueryEvents(ctx context.Context) ([]activity.Event, error) {
	var rows []usageRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT user_id, created_at FROM usage_log`)
	if err != nil {
		return nil, errors.Wrap(err, "querying usage log")
	}
	events := make([]activity.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, activity.Event{UserID: r.UserID, Timestamp: r.CreatedAt})
	}
	return events, nil
}
