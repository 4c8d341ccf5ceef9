package invite

import (
	"crypto/rand"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

const (
	codePrefix  = "NA"
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength  = 5 // random chars after the prefix
)

type Code struct {
	ID             string      `json:"id"`
	Code           string      `json:"code" validate:"invitecode"`
	IsUsed         bool        `json:"is_used"`
	UsedBy         null.String `json:"used_by"`
	UsedAt         null.Time   `json:"used_at"`
	CreatedAt      time.Time   `json:"created_at"`
	ExpiresAt      null.Time   `json:"expires_at"`
	MaxUses        int         `json:"max_uses"`
	CurrentUses    int         `json:"current_uses"`
	EmailSentTo    []string    `json:"email_sent_to"`
	ReminderSentAt null.Time   `json:"reminder_sent_at"`
	IsArchived     bool        `json:"is_archived"`
}

// GenerateCodes is the request to mint a batch of invite codes.
type GenerateCodes struct {
	Count         int `json:"count" validate:"required,gte=1,lte=100"`
	MaxUses       int `json:"max_uses" validate:"gte=0"`
	ExpiresInDays int `json:"expires_in_days" validate:"gte=0,lte=365"`
}

func (gc *GenerateCodes) Validate(validate *validator.Validate, _ ut.Translator) error {
	if gc.MaxUses == 0 {
		gc.MaxUses = 1
	}
	if gc.ExpiresInDays == 0 {
		gc.ExpiresInDays = 30
	}
	return validate.Struct(gc)
}

// newCodeString mints a code: the "NA" prefix plus 5 random uppercase
// letters or digits.
func newCodeString() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return codePrefix + string(buf), nil
}
