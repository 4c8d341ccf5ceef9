package credit

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/profile"
)

var ErrNotFound = errors.New("credit balance not found")

type (
	Repository interface {
		GetBalanceByUserID(ctx context.Context, userID string) (Balance, error)
		CreateBalance(ctx context.Context, b Balance) (Balance, error)
		UpdateBalance(ctx context.Context, b Balance) (Balance, error)
		// QueryBalances returns balances most recently updated first,
		// optionally restricted to one user.
		QueryBalances(ctx context.Context, userID string) ([]Balance, error)
		// QueryPurchases returns purchases most recent first, optionally
		// filtered by status.
		QueryPurchases(ctx context.Context, status string) ([]Purchase, error)
	}

	Service struct {
		repo       Repository
		profileSvc *profile.Service
		mailSvc    core.EmailService
		logger     core.Logger
	}
)

func NewService(repo Repository, profileSvc *profile.Service, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, profileSvc: profileSvc, mailSvc: mailSvc, logger: logger}
}

func (svc *Service) QueryBalances(ctx context.Context, userID string) ([]Balance, error) {
	return svc.repo.QueryBalances(ctx, userID)
}

func (svc *Service) QueryPurchases(ctx context.Context, status string) ([]Purchase, error) {
	return svc.repo.QueryPurchases(ctx, status)
}

// Assign grants credits to a user, upserting their balance and recording
// the grant in the balance metadata. On success a "credits added" email is
// sent and the profile metadata is stamped; a failure there is logged and
// never fails the assignment itself.
func (svc *Service) Assign(ctx context.Context, ac AssignCredits) (Balance, error) {
	now := time.Now().UTC()
	grant := &Assignment{
		Amount:    ac.Credits,
		Timestamp: now,
		Notes:     null.NewString(ac.Notes, ac.Notes != ""),
	}

	bal, err := svc.repo.GetBalanceByUserID(ctx, ac.UserID)
	switch errors.Cause(err) {
	case nil:
		bal.BalanceDollars += ac.Credits
		bal.TotalPurchased += ac.Credits
		bal.LastUpdated = now
		bal.Metadata.LastAssignment = grant
		bal, err = svc.repo.UpdateBalance(ctx, bal)
	case ErrNotFound:
		bal = Balance{
			UserID:         ac.UserID,
			BalanceDollars: ac.Credits,
			TotalPurchased: ac.Credits,
			TotalUsed:      0,
			LastUpdated:    now,
			Metadata:       Metadata{InitialAssignment: grant},
		}
		bal, err = svc.repo.CreateBalance(ctx, bal)
	default:
		return Balance{}, errors.Wrap(err, "finding balance")
	}
	if err != nil {
		return Balance{}, errors.Wrap(err, "saving balance")
	}

	if err = svc.sendCreditsEmail(ctx, ac.UserID, now); err != nil {
		svc.logger.Warn(fmt.Sprintf("sending credits email: %v", err), err)
	}
	return bal, nil
}

func (svc *Service) sendCreditsEmail(ctx context.Context, userID string, now time.Time) error {
	p, err := svc.profileSvc.GetByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "finding profile")
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: p.FullName, Address: p.Email}},
		Subject:      "Credits Added to Your Account",
		TemplateName: "credits-added",
		TemplateData: p,
	})

	return svc.profileSvc.MarkCreditsEmailSent(ctx, userID, now)
}
