package profile

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/heliumhq/dashboard-api/core"
)

type repoStub struct {
	profiles map[string]Profile // by user ID
}

func newRepoStub(profiles ...Profile) *repoStub {
	r := &repoStub{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *repoStub) CheckEmailUniqueness(_ context.Context, email string) error {
	for _, p := range r.profiles {
		if p.Email == email {
			return ErrEmailExists
		}
	}
	return nil
}

func (r *repoStub) CreateProfile(_ context.Context, p Profile) (Profile, error) {
	r.profiles[p.UserID] = p
	return p, nil
}

func (r *repoStub) QueryAllProfiles(context.Context) ([]Profile, error) {
	profiles := make([]Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *repoStub) GetProfileByUserID(_ context.Context, userID string) (Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return Profile{}, ErrNotFound
}

func (r *repoStub) UpdateProfileMetadata(_ context.Context, userID string, md Metadata, updatedAt time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return ErrNotFound
	}
	p.Metadata = md
	p.UpdatedAt = updatedAt
	r.profiles[userID] = p
	return nil
}

func (r *repoStub) DeleteProfileByUserID(_ context.Context, userID string) error {
	if _, ok := r.profiles[userID]; !ok {
		return ErrNotFound
	}
	delete(r.profiles, userID)
	return nil
}

func (r *repoStub) QueryContacts(_ context.Context, userIDs []string) ([]Contact, error) {
	contacts := make([]Contact, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			contacts = append(contacts, Contact{UserID: p.UserID, Email: p.Email, FullName: p.FullName})
		}
	}
	return contacts, nil
}

func newTestValidator(t *testing.T) (*validator.Validate, ut.Translator) {
	t.Helper()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate, translator
}

func Test_NewProfile_Validate(t *testing.T) {
	validate, translator := newTestValidator(t)
	svc := NewService(newRepoStub(Profile{UserID: "u1", Email: "taken@test.io"}))

	t.Run("defaults preferred name to first name", func(t *testing.T) {
		np := NewProfile{Email: " JANE@test.io ", Password: "s3cr3tpwd", FullName: "Jane Doe"}
		err := np.Validate(validate, translator, svc)
		assert.NoError(t, err)
		assert.Equal(t, "jane@test.io", np.Email)
		assert.Equal(t, "Jane", np.PreferredName)
	})

	t.Run("short password rejected", func(t *testing.T) {
		np := NewProfile{Email: "jane@test.io", Password: "short", FullName: "Jane Doe"}
		assert.Error(t, np.Validate(validate, translator, svc))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		np := NewProfile{Email: "taken@test.io", Password: "s3cr3tpwd", FullName: "Jane Doe"}
		err := np.Validate(validate, translator, svc)
		assert.True(t, core.IsValidationError(err))
	})
}

func Test_Service_Create(t *testing.T) {
	repo := newRepoStub()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), NewProfile{
		Email:    "jane@test.io",
		Password: "s3cr3tpwd",
		FullName: "Jane Doe",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.NotEmpty(t, p.UserID)
	assert.Equal(t, "seed", p.PlanType)
	assert.Equal(t, "individual", p.AccountType)
	assert.NoError(t, bcrypt.CompareHashAndPassword(p.PasswordHash, []byte("s3cr3tpwd")))
}

func Test_Service_MarkCreditsEmailSent(t *testing.T) {
	repo := newRepoStub(Profile{UserID: "u1", Email: "jane@test.io"})
	svc := NewService(repo)
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, svc.MarkCreditsEmailSent(context.Background(), "u1", at))

	p, err := svc.GetByUserID(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Sent & Assigned", p.Metadata.CreditStatus())
	assert.Equal(t, at, p.Metadata.CreditsEmailSentAt.Time)

	err = svc.MarkCreditsEmailSent(context.Background(), "missing", at)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}

func Test_Service_BulkDelete(t *testing.T) {
	repo := newRepoStub(
		Profile{UserID: "u1", Email: "a@test.io"},
		Profile{UserID: "u2", Email: "b@test.io"},
	)
	svc := NewService(repo)

	summary, err := svc.BulkDelete(context.Background(), []string{"u1", "u2", "ghost"})
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.FailureCount)
	assert.Empty(t, repo.profiles)
}
