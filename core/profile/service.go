package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/bulkops"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string) error
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		// QueryAllProfiles returns profiles most recently created first.
		QueryAllProfiles(ctx context.Context) ([]Profile, error)
		GetProfileByUserID(ctx context.Context, userID string) (Profile, error)
		UpdateProfileMetadata(ctx context.Context, userID string, md Metadata, updatedAt time.Time) error
		DeleteProfileByUserID(ctx context.Context, userID string) error
		// QueryContacts resolves userIDs to sendable recipients; IDs with
		// no account are silently absent from the result.
		QueryContacts(ctx context.Context, userIDs []string) ([]Contact, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(email string) error {
	if err := svc.repo.CheckEmailUniqueness(context.Background(), email); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, np NewProfile) (Profile, error) {
	now := time.Now().UTC()
	p := Profile{
		ID:              uuid.New().String(),
		UserID:          uuid.New().String(),
		FullName:        np.FullName,
		PreferredName:   np.PreferredName,
		WorkDescription: np.WorkDescription,
		Email:           np.Email,
		PlanType:        "seed",
		AccountType:     "individual",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := p.SetPassword(np.Password); err != nil {
		return Profile{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateProfile(ctx, p)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Profile, error) {
	return svc.repo.QueryAllProfiles(ctx)
}

func (svc *Service) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	return svc.repo.GetProfileByUserID(ctx, userID)
}

func (svc *Service) Delete(ctx context.Context, userID string) error {
	return svc.repo.DeleteProfileByUserID(ctx, userID)
}

// BulkDelete deletes every target independently and reports per-target
// outcomes; one failed deletion never aborts the others.
func (svc *Service) BulkDelete(ctx context.Context, userIDs []string) (bulkops.Summary, error) {
	return bulkops.Run(ctx, userIDs, func(ctx context.Context, id string) error {
		return svc.repo.DeleteProfileByUserID(ctx, id)
	})
}

func (svc *Service) Contacts(ctx context.Context, userIDs []string) ([]Contact, error) {
	return svc.repo.QueryContacts(ctx, userIDs)
}

// MarkCreditsEmailSent stamps the credits-email flags into the profile
// metadata, leaving other fields untouched.
func (svc *Service) MarkCreditsEmailSent(ctx context.Context, userID string, at time.Time) error {
	p, err := svc.repo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "finding profile")
	}
	md := p.Metadata
	md.CreditsEmailSentAt.SetValid(at.UTC())
	md.CreditsAssigned.SetValid(true)
	return svc.repo.UpdateProfileMetadata(ctx, userID, md, at.UTC())
}
