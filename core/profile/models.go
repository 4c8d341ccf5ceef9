package profile

import (
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/heliumhq/dashboard-api/core"
)

// Metadata is the typed view of the per-profile metadata blob. Unknown
// keys in stored JSON are ignored on decode, never treated as errors.
type Metadata struct {
	CreditsEmailSentAt null.Time `json:"credits_email_sent_at,omitempty"`
	CreditsAssigned    null.Bool `json:"credits_assigned,omitempty"`
}

// CreditStatus renders the metadata flags the way the dashboard displays
// them: whether a credits email went out and whether credits were assigned.
func (m Metadata) CreditStatus() string {
	sent := m.CreditsEmailSentAt.Valid
	assigned := m.CreditsAssigned.Valid && m.CreditsAssigned.Bool
	switch {
	case sent && assigned:
		return "Sent & Assigned"
	case sent:
		return "Sent"
	case assigned:
		return "Assigned"
	default:
		return "Not Sent"
	}
}

type Profile struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	FullName        string      `json:"full_name"`
	PreferredName   string      `json:"preferred_name"`
	WorkDescription string      `json:"work_description"`
	Email           string      `json:"email"`
	AvatarURL       null.String `json:"avatar_url"`
	ReferralSource  null.String `json:"referral_source"`
	ConsentGiven    null.Bool   `json:"consent_given"`
	ConsentDate     null.Time   `json:"consent_date"`
	PlanType        string      `json:"plan_type"`
	AccountType     string      `json:"account_type"`
	Metadata        Metadata    `json:"metadata"`
	PasswordHash    []byte      `json:"-"`
	CreatedAt       time.Time   `json:"created_at"` // UTC
	UpdatedAt       time.Time   `json:"updated_at"` // UTC
}

func (p *Profile) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

// Contact is the minimal recipient view used by email campaigns.
type Contact struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewProfile contains information needed to create a new user account.
type NewProfile struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	FullName        string `json:"full_name" validate:"required"`
	PreferredName   string `json:"preferred_name"`
	WorkDescription string `json:"work_description"`
}

func (np *NewProfile) Validate(validate *validator.Validate, _ ut.Translator, svc *Service) error {
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.FullName = core.CleanString(np.FullName)
	np.PreferredName = core.CleanString(np.PreferredName)

	if err := validate.Struct(np); err != nil {
		return err
	}
	if np.PreferredName == "" && np.FullName != "" {
		np.PreferredName = strings.Fields(np.FullName)[0]
	}
	return svc.checkUniqueness(np.Email)
}
