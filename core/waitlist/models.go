package waitlist

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Entry struct {
	ID                  string      `json:"id"`
	FullName            string      `json:"full_name"`
	Email               string      `json:"email"`
	Company             null.String `json:"company"`
	PhoneNumber         string      `json:"phone_number"`
	CountryCode         string      `json:"country_code"`
	Reference           null.String `json:"reference"`
	ReferralSource      null.String `json:"referral_source"`
	ReferralSourceOther null.String `json:"referral_source_other"`
	UserAgent           null.String `json:"user_agent"`
	IPAddress           null.String `json:"ip_address"`
	JoinedAt            time.Time   `json:"joined_at"`
	NotifiedAt          null.Time   `json:"notified_at"`
	IsNotified          bool        `json:"is_notified"`
	IsArchived          bool        `json:"is_archived"`
}
