// Package campaign sends dashboard-composed email blasts to user cohorts.
package campaign

import (
	"context"
	"net/mail"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/bulkops"
	"github.com/heliumhq/dashboard-api/core/profile"
)

// Content is the composed message of a campaign.
type Content struct {
	Subject     string `json:"subject" validate:"required"`
	TextContent string `json:"text_content" validate:"required_without=HTMLContent"`
	HTMLContent string `json:"html_content" validate:"required_without=TextContent"`
}

func (c *Content) Validate(validate *validator.Validate, _ ut.Translator) error {
	c.Subject = core.CleanString(c.Subject)
	return validate.Struct(c)
}

type Service struct {
	profileSvc *profile.Service
	deliverer  core.EmailDeliverer
}

func NewService(profileSvc *profile.Service, deliverer core.EmailDeliverer) *Service {
	return &Service{profileSvc: profileSvc, deliverer: deliverer}
}

// SendBulk delivers the content to every resolved recipient, one message
// per user, and reports per-recipient outcomes. A nil/empty selection
// means "all users". Recipients are resolved before any send; an empty
// cohort is a validation error and no message goes out.
func (svc *Service) SendBulk(ctx context.Context, content Content, selectedUserIDs []string) (bulkops.Summary, error) {
	contacts, err := svc.resolveRecipients(ctx, selectedUserIDs)
	if err != nil {
		return bulkops.Summary{}, err
	}
	if len(contacts) == 0 {
		return bulkops.Summary{}, core.NewValidationError(errors.New("no users found to send emails to"))
	}

	byID := make(map[string]profile.Contact, len(contacts))
	ids := make([]string, 0, len(contacts))
	for _, c := range contacts {
		byID[c.UserID] = c
		ids = append(ids, c.UserID)
	}

	return bulkops.Run(ctx, ids, func(ctx context.Context, id string) error {
		c := byID[id]
		return svc.deliverer.DeliverMessage(ctx, svc.message(c.FullName, c.Email, content))
	})
}

// SendIndividual delivers the content to a single address.
func (svc *Service) SendIndividual(ctx context.Context, email string, content Content) error {
	return svc.deliverer.DeliverMessage(ctx, svc.message("", email, content))
}

func (svc *Service) message(name, email string, content Content) *core.EmailMessage {
	return &core.EmailMessage{
		To:          []mail.Address{{Name: name, Address: email}},
		Subject:     content.Subject,
		TextContent: content.TextContent,
		HTMLContent: content.HTMLContent,
	}
}

func (svc *Service) resolveRecipients(ctx context.Context, selectedUserIDs []string) ([]profile.Contact, error) {
	if len(selectedUserIDs) > 0 {
		contacts, err := svc.profileSvc.Contacts(ctx, selectedUserIDs)
		return contacts, errors.Wrap(err, "resolving selected recipients")
	}

	profiles, err := svc.profileSvc.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying profiles")
	}
	contacts := make([]profile.Contact, 0, len(profiles))
	for _, p := range profiles {
		if p.Email == "" {
			continue
		}
		contacts = append(contacts, profile.Contact{UserID: p.UserID, Email: p.Email, FullName: p.FullName})
	}
	return contacts, nil
}
