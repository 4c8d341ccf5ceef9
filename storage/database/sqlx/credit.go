package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core/credit"
)

type balanceRow struct {
	UserID         string          `db:"user_id"`
	BalanceDollars float64         `db:"balance_dollars"`
	TotalPurchased float64         `db:"total_purchased"`
	TotalUsed      float64         `db:"total_used"`
	LastUpdated    time.Time       `db:"last_updated"`
	Metadata       json.RawMessage `db:"metadata"`
	UserEmail      null.String     `db:"user_email"`
	UserName       null.String     `db:"user_name"`
}

type purchaseRow struct {
	ID                    string      `db:"id"`
	UserID                string      `db:"user_id"`
	AmountDollars         float64     `db:"amount_dollars"`
	StripePaymentIntentID null.String `db:"stripe_payment_intent_id"`
	StripeChargeID        null.String `db:"stripe_charge_id"`
	Status                string      `db:"status"`
	Description           null.String `db:"description"`
	CreatedAt             time.Time   `db:"created_at"`
	CompletedAt           null.Time   `db:"completed_at"`
	ExpiresAt             null.Time   `db:"expires_at"`
}

type creditRepository struct {
	db *sqlx.DB
}

var _ credit.Repository = (*creditRepository)(nil) // interface compliance check

func NewCreditRepository(db *sqlx.DB) *creditRepository {
	return &creditRepository{db: db}
}

func (repo creditRepository) unrow(r balanceRow) (credit.Balance, error) {
	b := credit.Balance{
		UserID:         r.UserID,
		BalanceDollars: r.BalanceDollars,
		TotalPurchased: r.TotalPurchased,
		TotalUsed:      r.TotalUsed,
		LastUpdated:    r.LastUpdated,
		UserEmail:      r.UserEmail,
		UserName:       r.UserName,
	}
	if len(r.Metadata) > 0 {
		if err := json.Unmarshal(r.Metadata, &b.Metadata); err != nil {
			return credit.Balance{}, errors.Wrap(err, "decoding metadata")
		}
	}
	return b, nil
}

func (repo creditRepository) GetBalanceByUserID(ctx context.Context, userID string) (credit.Balance, error) {
	var row balanceRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT user_id, balance_dollars, total_purchased, total_used, last_updated, metadata,
		        NULL AS user_email, NULL AS user_name
		 FROM credit_balance WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return credit.Balance{}, credit.ErrNotFound
		}
		return credit.Balance{}, errors.Wrap(err, "getting balance")
	}
	return repo.unrow(row)
}

func (repo creditRepository) CreateBalance(ctx context.Context, b credit.Balance) (credit.Balance, error) {
	md, err := json.Marshal(b.Metadata)
	if err != nil {
		return credit.Balance{}, errors.Wrap(err, "encoding metadata")
	}
	_, err = repo.db.ExecContext(ctx, `
		INSERT INTO credit_balance (user_id, balance_dollars, total_purchased, total_used, last_updated, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.UserID, b.BalanceDollars, b.TotalPurchased, b.TotalUsed, b.LastUpdated.UTC(), md)
	if err != nil {
		return credit.Balance{}, errors.Wrap(err, "inserting balance")
	}
	return b, nil
}

func (repo creditRepository) UpdateBalance(ctx context.Context, b credit.Balance) (credit.Balance, error) {
	md, err := json.Marshal(b.Metadata)
	if err != nil {
		return credit.Balance{}, errors.Wrap(err, "encoding metadata")
	}
	res, err := repo.db.ExecContext(ctx, `
		UPDATE credit_balance
		SET balance_dollars = $2, total_purchased = $3, total_used = $4, last_updated = $5,
		    metadata = metadata || $6
		WHERE user_id = $1`,
		b.UserID, b.BalanceDollars, b.TotalPurchased, b.TotalUsed, b.LastUpdated.UTC(), md)
	if err != nil {
		return credit.Balance{}, errors.Wrap(err, "updating balance")
	}
	if err = trapNoRows(res, credit.ErrNotFound); err != nil {
		return credit.Balance{}, err
	}
	return b, nil
}

func (repo creditRepository) QueryBalances(ctx context.Context, userID string) ([]credit.Balance, error) {
	q := `
		SELECT cb.user_id, cb.balance_dollars, cb.total_purchased, cb.total_used,
		       cb.last_updated, cb.metadata, up.email AS user_email, up.full_name AS user_name
		FROM credit_balance cb
		LEFT JOIN user_profile up ON up.user_id = cb.user_id`
	args := []interface{}{}
	if userID != "" {
		q += ` WHERE cb.user_id = $1`
		args = append(args, userID)
	}
	q += ` ORDER BY cb.last_updated DESC`

	var rows []balanceRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying balances")
	}
	balances := make([]credit.Balance, 0, len(rows))
	for _, r := range rows {
		b, err := repo.unrow(r)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

func (repo creditRepository) QueryPurchases(ctx context.Context, status string) ([]credit.Purchase, error) {
	q := `SELECT * FROM credit_purchase`
	args := []interface{}{}
	if status != "" {
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY created_at DESC`

	var rows []purchaseRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying purchases")
	}
	purchases := make([]credit.Purchase, 0, len(rows))
	for _, r := range rows {
		purchases = append(purchases, credit.Purchase{
			ID:                    r.ID,
			UserID:                r.UserID,
			AmountDollars:         r.AmountDollars,
			StripePaymentIntentID: r.StripePaymentIntentID,
			StripeChargeID:        r.StripeChargeID,
			Status:                r.Status,
			Description:           r.Description,
			CreatedAt:             r.CreatedAt,
			CompletedAt:           r.CompletedAt,
			ExpiresAt:             r.ExpiresAt,
		})
	}
	return purchases, nil
}
