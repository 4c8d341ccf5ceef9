package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core/waitlist"
)

type waitlistRow struct {
	ID                  string      `db:"id"`
	FullName            string      `db:"full_name"`
	Email               string      `db:"email"`
	Company             null.String `db:"company"`
	PhoneNumber         string      `db:"phone_number"`
	CountryCode         string      `db:"country_code"`
	Reference           null.String `db:"reference"`
	ReferralSource      null.String `db:"referral_source"`
	ReferralSourceOther null.String `db:"referral_source_other"`
	UserAgent           null.String `db:"user_agent"`
	IPAddress           null.String `db:"ip_address"`
	JoinedAt            time.Time   `db:"joined_at"`
	NotifiedAt          null.Time   `db:"notified_at"`
	IsNotified          bool        `db:"is_notified"`
	IsArchived          bool        `db:"is_archived"`
}

type waitlistRepository struct {
	db *sqlx.DB
}

var _ waitlist.Repository = (*waitlistRepository)(nil) // interface compliance check

func NewWaitlistRepository(db *sqlx.DB) *waitlistRepository {
	return &waitlistRepository{db: db}
}

func (repo waitlistRepository) QueryAllEntries(ctx context.Context) ([]waitlist.Entry, error) {
	var rows []waitlistRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM waitlist ORDER BY joined_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying waitlist")
	}
	entries := make([]waitlist.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, waitlist.Entry{
			ID:                  r.ID,
			FullName:            r.FullName,
			Email:               r.Email,
			Company:             r.Company,
			PhoneNumber:         r.PhoneNumber,
			CountryCode:         r.CountryCode,
			Reference:           r.Reference,
			ReferralSource:      r.ReferralSource,
			ReferralSourceOther: r.ReferralSourceOther,
			UserAgent:           r.UserAgent,
			IPAddress:           r.IPAddress,
			JoinedAt:            r.JoinedAt,
			NotifiedAt:          r.NotifiedAt,
			IsNotified:          r.IsNotified,
			IsArchived:          r.IsArchived,
		})
	}
	return entries, nil
}

func (repo waitlistRepository) ArchiveEntriesByID(ctx context.Context, ids []string) (int, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE waitlist SET is_archived = TRUE WHERE id = ANY ($1)`, pq.Array(ids))
	if err != nil {
		return 0, errors.Wrap(err, "archiving waitlist entries")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "checking affected rows")
	}
	return int(n), nil
}

func (repo waitlistRepository) ArchiveNotifiedEntries(ctx context.Context) (int, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE waitlist SET is_archived = TRUE WHERE is_notified AND NOT is_archived`)
	if err != nil {
		return 0, errors.Wrap(err, "archiving notified waitlist entries")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "checking affected rows")
	}
	return int(n), nil
}
