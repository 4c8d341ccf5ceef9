package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core/invite"
)

type inviteCodeRow struct {
	ID             string         `db:"id"`
	Code           string         `db:"code"`
	IsUsed         bool           `db:"is_used"`
	UsedBy         null.String    `db:"used_by"`
	UsedAt         null.Time      `db:"used_at"`
	CreatedAt      time.Time      `db:"created_at"`
	ExpiresAt      null.Time      `db:"expires_at"`
	MaxUses        int            `db:"max_uses"`
	CurrentUses    int            `db:"current_uses"`
	EmailSentTo    pq.StringArray `db:"email_sent_to"`
	ReminderSentAt null.Time      `db:"reminder_sent_at"`
	IsArchived     bool           `db:"is_archived"`
}

type inviteRepository struct {
	db *sqlx.DB
}

var _ invite.Repository = (*inviteRepository)(nil) // interface compliance check

func NewInviteRepository(db *sqlx.DB) *inviteRepository {
	return &inviteRepository{db: db}
}

func (repo inviteRepository) row(c invite.Code) inviteCodeRow {
	return inviteCodeRow{
		ID:             c.ID,
		Code:           c.Code,
		IsUsed:         c.IsUsed,
		UsedBy:         c.UsedBy,
		UsedAt:         c.UsedAt,
		CreatedAt:      c.CreatedAt.UTC(),
		ExpiresAt:      c.ExpiresAt,
		MaxUses:        c.MaxUses,
		CurrentUses:    c.CurrentUses,
		EmailSentTo:    pq.StringArray(c.EmailSentTo),
		ReminderSentAt: c.ReminderSentAt,
		IsArchived:     c.IsArchived,
	}
}

func (repo inviteRepository) unrow(r inviteCodeRow) invite.Code {
	return invite.Code{
		ID:             r.ID,
		Code:           r.Code,
		IsUsed:         r.IsUsed,
		UsedBy:         r.UsedBy,
		UsedAt:         r.UsedAt,
		CreatedAt:      r.CreatedAt,
		ExpiresAt:      r.ExpiresAt,
		MaxUses:        r.MaxUses,
		CurrentUses:    r.CurrentUses,
		EmailSentTo:    []string(r.EmailSentTo),
		ReminderSentAt: r.ReminderSentAt,
		IsArchived:     r.IsArchived,
	}
}

func (repo inviteRepository) CreateCodes(ctx context.Context, codes []invite.Code) error {
	rows := make([]inviteCodeRow, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, repo.row(c))
	}
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO invite_code (id, code, is_used, used_by, used_at, created_at, expires_at,
		                         max_uses, current_uses, email_sent_to, reminder_sent_at, is_archived)
		VALUES (:id, :code, :is_used, :used_by, :used_at, :created_at, :expires_at,
		        :max_uses, :current_uses, :email_sent_to, :reminder_sent_at, :is_archived)`, rows)
	return errors.Wrap(err, "inserting invite codes")
}

func (repo inviteRepository) QueryAllCodes(ctx context.Context) ([]invite.Code, error) {
	var rows []inviteCodeRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM invite_code ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying invite codes")
	}
	codes := make([]invite.Code, 0, len(rows))
	for _, r := range rows {
		codes = append(codes, repo.unrow(r))
	}
	return codes, nil
}

func (repo inviteRepository) DeleteCodeByID(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM invite_code WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting invite code")
	}
	return trapNoRows(res, invite.ErrNotFound)
}

func (repo inviteRepository) SetCodeArchived(ctx context.Context, id string, archived bool) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE invite_code SET is_archived = $2 WHERE id = $1`, id, archived)
	if err != nil {
		return errors.Wrap(err, "archiving invite code")
	}
	return trapNoRows(res, invite.ErrNotFound)
}

func (repo inviteRepository) ArchiveUsedCodes(ctx context.Context) (int, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE invite_code SET is_archived = TRUE WHERE is_used AND NOT is_archived`)
	if err != nil {
		return 0, errors.Wrap(err, "archiving used invite codes")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "checking affected rows")
	}
	return int(n), nil
}
