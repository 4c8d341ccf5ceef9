package credit

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/profile"
)

type repoStub struct {
	balances map[string]Balance
	calls    int
}

func newRepoStub(balances ...Balance) *repoStub {
	r := &repoStub{balances: make(map[string]Balance, len(balances))}
	for _, b := range balances {
		r.balances[b.UserID] = b
	}
	return r
}

func (r *repoStub) GetBalanceByUserID(_ context.Context, userID string) (Balance, error) {
	r.calls++
	if b, ok := r.balances[userID]; ok {
		return b, nil
	}
	return Balance{}, ErrNotFound
}

func (r *repoStub) CreateBalance(_ context.Context, b Balance) (Balance, error) {
	r.calls++
	r.balances[b.UserID] = b
	return b, nil
}

func (r *repoStub) UpdateBalance(_ context.Context, b Balance) (Balance, error) {
	r.calls++
	r.balances[b.UserID] = b
	return b, nil
}

func (r *repoStub) QueryBalances(_ context.Context, userID string) ([]Balance, error) {
	balances := make([]Balance, 0, len(r.balances))
	for _, b := range r.balances {
		if userID == "" || b.UserID == userID {
			balances = append(balances, b)
		}
	}
	return balances, nil
}

func (r *repoStub) QueryPurchases(context.Context, string) ([]Purchase, error) { return nil, nil }

type profileRepoStub struct {
	profiles map[string]profile.Profile
}

func (r *profileRepoStub) CheckEmailUniqueness(context.Context, string) error { return nil }
func (r *profileRepoStub) CreateProfile(_ context.Context, p profile.Profile) (profile.Profile, error) {
	return p, nil
}
func (r *profileRepoStub) QueryAllProfiles(context.Context) ([]profile.Profile, error) {
	return nil, nil
}
func (r *profileRepoStub) GetProfileByUserID(_ context.Context, userID string) (profile.Profile, error) {
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}
func (r *profileRepoStub) UpdateProfileMetadata(_ context.Context, userID string, md profile.Metadata, _ time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return profile.ErrNotFound
	}
	p.Metadata = md
	r.profiles[userID] = p
	return nil
}
func (r *profileRepoStub) DeleteProfileByUserID(context.Context, string) error { return nil }
func (r *profileRepoStub) QueryContacts(context.Context, []string) ([]profile.Contact, error) {
	return nil, nil
}

type mailStub struct {
	sent []*core.EmailMessage
}

func (m *mailStub) SendMessages(messages ...*core.EmailMessage) {
	m.sent = append(m.sent, messages...)
}

type loggerStub struct {
	warnings []string
}

func (l *loggerStub) Debug(string, ...interface{}) {}
func (l *loggerStub) Info(string, ...interface{})  {}
func (l *loggerStub) Warn(msg string, _ ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *loggerStub) Error(string, ...interface{}) {}
func (l *loggerStub) Fatal(string, ...interface{}) {}

func setup(balances ...Balance) (*Service, *repoStub, *profileRepoStub, *mailStub, *loggerStub) {
	repo := newRepoStub(balances...)
	profileRepo := &profileRepoStub{profiles: map[string]profile.Profile{
		"u1": {UserID: "u1", FullName: "Jane Doe", PreferredName: "Jane", Email: "jane@test.io"},
	}}
	mail := &mailStub{}
	logger := &loggerStub{}
	svc := NewService(repo, profile.NewService(profileRepo), mail, logger)
	return svc, repo, profileRepo, mail, logger
}

func Test_CreditsToDollars(t *testing.T) {
	assert.Equal(t, 0.5, CreditsToDollars(50))
	assert.Equal(t, 1.0, CreditsToDollars(100))
	assert.Equal(t, 0.0, CreditsToDollars(0))
}

func Test_AssignCredits_Validate(t *testing.T) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	tests := []struct {
		name    string
		data    AssignCredits
		wantErr bool
	}{
		{name: "ok", data: AssignCredits{UserID: "u1", Credits: 1}},
		{name: "missing user", data: AssignCredits{Credits: 10}, wantErr: true},
		{name: "zero credits", data: AssignCredits{UserID: "u1"}, wantErr: true},
		{name: "fractional below one", data: AssignCredits{UserID: "u1", Credits: 0.5}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate, translator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Service_Assign_newBalance(t *testing.T) {
	svc, repo, profileRepo, mail, _ := setup()

	bal, err := svc.Assign(context.Background(), AssignCredits{UserID: "u1", Credits: 250, Notes: "welcome grant"})
	assert.NoError(t, err)
	assert.Equal(t, 250.0, bal.BalanceDollars)
	assert.Equal(t, 250.0, bal.TotalPurchased)
	assert.Equal(t, 0.0, bal.TotalUsed)
	if assert.NotNil(t, bal.Metadata.InitialAssignment) {
		assert.Equal(t, 250.0, bal.Metadata.InitialAssignment.Amount)
		assert.Equal(t, "welcome grant", bal.Metadata.InitialAssignment.Notes.String)
	}
	assert.Nil(t, bal.Metadata.LastAssignment)

	// stored
	assert.Contains(t, repo.balances, "u1")

	// notification went out and the profile was stamped
	if assert.Len(t, mail.sent, 1) {
		assert.Equal(t, "Credits Added to Your Account", mail.sent[0].Subject)
		assert.Equal(t, "jane@test.io", mail.sent[0].To[0].Address)
	}
	assert.Equal(t, "Sent & Assigned", profileRepo.profiles["u1"].Metadata.CreditStatus())
}

func Test_Service_Assign_existingBalance(t *testing.T) {
	initial := &Assignment{Amount: 100, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc, repo, _, _, _ := setup(Balance{
		UserID:         "u1",
		BalanceDollars: 40,
		TotalPurchased: 100,
		TotalUsed:      60,
		Metadata:       Metadata{InitialAssignment: initial},
	})

	bal, err := svc.Assign(context.Background(), AssignCredits{UserID: "u1", Credits: 10})
	assert.NoError(t, err)
	assert.Equal(t, 50.0, bal.BalanceDollars)
	assert.Equal(t, 110.0, bal.TotalPurchased)
	assert.Equal(t, 60.0, bal.TotalUsed)
	assert.Equal(t, initial, bal.Metadata.InitialAssignment, "the first grant stays on record")
	if assert.NotNil(t, bal.Metadata.LastAssignment) {
		assert.Equal(t, 10.0, bal.Metadata.LastAssignment.Amount)
	}
	assert.Equal(t, bal, repo.balances["u1"])
}

func Test_Service_Assign_emailFailureOnlyLogged(t *testing.T) {
	svc, repo, _, mail, logger := setup()

	// no profile for this user: the grant must still land
	bal, err := svc.Assign(context.Background(), AssignCredits{UserID: "ghost", Credits: 10})
	assert.NoError(t, err)
	assert.Equal(t, 10.0, bal.BalanceDollars)
	assert.Contains(t, repo.balances, "ghost")
	assert.Empty(t, mail.sent)
	assert.NotEmpty(t, logger.warnings)
}
