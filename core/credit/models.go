package credit

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core"
)

// CreditsToDollars converts a credit amount to dollars at the fixed rate
// of 100 credits = $1.00.
func CreditsToDollars(credits float64) float64 {
	return credits / 100
}

// Assignment records one credit grant inside the balance metadata.
type Assignment struct {
	Amount    float64     `json:"amount"`
	Timestamp time.Time   `json:"timestamp"`
	Notes     null.String `json:"notes"`
}

// Metadata is the typed view of the balance metadata blob; unknown keys in
// stored JSON are ignored on decode.
type Metadata struct {
	InitialAssignment *Assignment `json:"initial_assignment,omitempty"`
	LastAssignment    *Assignment `json:"last_assignment,omitempty"`
}

type Balance struct {
	UserID         string    `json:"user_id"`
	BalanceDollars float64   `json:"balance_dollars"`
	TotalPurchased float64   `json:"total_purchased"`
	TotalUsed      float64   `json:"total_used"`
	LastUpdated    time.Time `json:"last_updated"` // UTC
	Metadata       Metadata  `json:"metadata"`

	// joined from the profile, when available
	UserEmail null.String `json:"user_email"`
	UserName  null.String `json:"user_name"`
}

// Purchase statuses.
const (
	PurchaseCompleted = "completed"
	PurchasePending   = "pending"
	PurchaseFailed    = "failed"
	PurchaseRefunded  = "refunded"
)

type Purchase struct {
	ID                    string      `json:"id"`
	UserID                string      `json:"user_id"`
	AmountDollars         float64     `json:"amount_dollars"`
	StripePaymentIntentID null.String `json:"stripe_payment_intent_id"`
	StripeChargeID        null.String `json:"stripe_charge_id"`
	Status                string      `json:"status"`
	Description           null.String `json:"description"`
	CreatedAt             time.Time   `json:"created_at"`
	CompletedAt           null.Time   `json:"completed_at"`
	ExpiresAt             null.Time   `json:"expires_at"`
}

// AssignCredits is the request to grant credits to one user. Credits is
// the raw credit amount (not dollars); at least 1 credit must be granted.
type AssignCredits struct {
	UserID  string  `json:"user_id" validate:"required"`
	Credits float64 `json:"credits_to_add" validate:"required,gte=1"`
	Notes   string  `json:"notes"`
}

func (ac *AssignCredits) Validate(validate *validator.Validate, _ ut.Translator) error {
	ac.UserID = core.CleanString(ac.UserID)
	ac.Notes = core.CleanString(ac.Notes)
	return validate.Struct(ac)
}
