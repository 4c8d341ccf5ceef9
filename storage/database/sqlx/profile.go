package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core/profile"
)

type profileRow struct {
	ID              string          `db:"id"`
	UserID          string          `db:"user_id"`
	FullName        string          `db:"full_name"`
	PreferredName   string          `db:"preferred_name"`
	WorkDescription string          `db:"work_description"`
	Email           string          `db:"email"`
	AvatarURL       null.String     `db:"avatar_url"`
	ReferralSource  null.String     `db:"referral_source"`
	ConsentGiven    null.Bool       `db:"consent_given"`
	ConsentDate     null.Time       `db:"consent_date"`
	PlanType        string          `db:"plan_type"`
	AccountType     string          `db:"account_type"`
	Metadata        json.RawMessage `db:"metadata"`
	PasswordHash    []byte          `db:"password_hash"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) row(p profile.Profile) (profileRow, error) {
	md, err := json.Marshal(p.Metadata)
	if err != nil {
		return profileRow{}, errors.Wrap(err, "encoding metadata")
	}
	return profileRow{
		ID:              p.ID,
		UserID:          p.UserID,
		FullName:        p.FullName,
		PreferredName:   p.PreferredName,
		WorkDescription: p.WorkDescription,
		Email:           p.Email,
		AvatarURL:       p.AvatarURL,
		ReferralSource:  p.ReferralSource,
		ConsentGiven:    p.ConsentGiven,
		ConsentDate:     p.ConsentDate,
		PlanType:        p.PlanType,
		AccountType:     p.AccountType,
		Metadata:        md,
		PasswordHash:    p.PasswordHash,
		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
	}, nil
}

func (repo profileRepository) unrow(r profileRow) (profile.Profile, error) {
	p := profile.Profile{
		ID:              r.ID,
		UserID:          r.UserID,
		FullName:        r.FullName,
		PreferredName:   r.PreferredName,
		WorkDescription: r.WorkDescription,
		Email:           r.Email,
		AvatarURL:       r.AvatarURL,
		ReferralSource:  r.ReferralSource,
		ConsentGiven:    r.ConsentGiven,
		ConsentDate:     r.ConsentDate,
		PlanType:        r.PlanType,
		AccountType:     r.AccountType,
		PasswordHash:    r.PasswordHash,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if len(r.Metadata) > 0 {
		// unknown metadata keys are dropped on decode, never an error
		if err := json.Unmarshal(r.Metadata, &p.Metadata); err != nil {
			return profile.Profile{}, errors.Wrap(err, "decoding metadata")
		}
	}
	return p, nil
}

func (repo profileRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM user_profile WHERE email = $1)`, email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return profile.ErrEmailExists
	}
	return nil
}

func (repo profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	row, err := repo.row(p)
	if err != nil {
		return profile.Profile{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO user_profile (id, user_id, full_name, preferred_name, work_description, email,
		                          avatar_url, referral_source, consent_given, consent_date,
		                          plan_type, account_type, metadata, password_hash, created_at, updated_at)
		VALUES (:id, :user_id, :full_name, :preferred_name, :work_description, :email,
		        :avatar_url, :referral_source, :consent_given, :consent_date,
		        :plan_type, :account_type, :metadata, :password_hash, :created_at, :updated_at)`, row)
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "inserting profile")
	}
	return p, nil
}

func (repo profileRepository) QueryAllProfiles(ctx context.Context) ([]profile.Profile, error) {
	var rows []profileRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM user_profile ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}
	profiles := make([]profile.Profile, 0, len(rows))
	for _, r := range rows {
		p, err := repo.unrow(r)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (repo profileRepository) GetProfileByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	var row profileRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM user_profile WHERE user_id = $1`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "getting profile")
	}
	return repo.unrow(row)
}

func (repo profileRepository) UpdateProfileMetadata(ctx context.Context, userID string, md profile.Metadata, updatedAt time.Time) error {
	enc, err := json.Marshal(md)
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}
	res, err := repo.db.ExecContext(ctx,
		`UPDATE user_profile SET metadata = metadata || $2, updated_at = $3 WHERE user_id = $1`,
		userID, enc, updatedAt.UTC())
	if err != nil {
		return errors.Wrap(err, "updating profile metadata")
	}
	return trapNoRows(res, profile.ErrNotFound)
}

func (repo profileRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM user_profile WHERE user_id = $1`, userID)
	if err != nil {
		return errors.Wrap(err, "deleting profile")
	}
	return trapNoRows(res, profile.ErrNotFound)
}

func (repo profileRepository) QueryContacts(ctx context.Context, userIDs []string) ([]profile.Contact, error) {
	var rows []struct {
		UserID   string `db:"user_id"`
		Email    string `db:"email"`
		FullName string `db:"full_name"`
	}
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT user_id, email, full_name FROM user_profile WHERE user_id = ANY ($1)`, pq.Array(userIDs))
	if err != nil {
		return nil, errors.Wrap(err, "querying contacts")
	}
	contacts := make([]profile.Contact, 0, len(rows))
	for _, r := range rows {
		contacts = append(contacts, profile.Contact{UserID: r.UserID, Email: r.Email, FullName: r.FullName})
	}
	return contacts, nil
}

// trapNoRows maps a zero-row mutation to the domain's not-found error.
func trapNoRows(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "checking affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}
