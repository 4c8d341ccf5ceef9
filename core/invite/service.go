package invite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/heliumhq/dashboard-api/core/bulkops"
)

var ErrNotFound = errors.New("invite code not found")

type (
	Repository interface {
		CreateCodes(ctx context.Context, codes []Code) error
		// QueryAllCodes returns codes most recently created first.
		QueryAllCodes(ctx context.Context) ([]Code, error)
		DeleteCodeByID(ctx context.Context, id string) error
		SetCodeArchived(ctx context.Context, id string, archived bool) error
		// ArchiveUsedCodes archives every used, unarchived code and
		// returns how many were touched.
		ArchiveUsedCodes(ctx context.Context) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Generate mints gc.Count fresh codes and persists them in one batch.
func (svc *Service) Generate(ctx context.Context, gc GenerateCodes) ([]Code, error) {
	now := time.Now().UTC()
	codes := make([]Code, 0, gc.Count)
	for i := 0; i < gc.Count; i++ {
		code, err := newCodeString()
		if err != nil {
			return nil, errors.Wrap(err, "generating code")
		}
		codes = append(codes, Code{
			ID:          uuid.New().String(),
			Code:        code,
			MaxUses:     gc.MaxUses,
			CreatedAt:   now,
			ExpiresAt:   null.TimeFrom(now.AddDate(0, 0, gc.ExpiresInDays)),
			EmailSentTo: []string{},
		})
	}
	if err := svc.repo.CreateCodes(ctx, codes); err != nil {
		return nil, errors.Wrap(err, "saving codes")
	}
	return codes, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Code, error) {
	return svc.repo.QueryAllCodes(ctx)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteCodeByID(ctx, id)
}

// BulkDelete deletes every code independently, never aborting siblings.
func (svc *Service) BulkDelete(ctx context.Context, ids []string) (bulkops.Summary, error) {
	return bulkops.Run(ctx, ids, func(ctx context.Context, id string) error {
		return svc.repo.DeleteCodeByID(ctx, id)
	})
}

func (svc *Service) Archive(ctx context.Context, id string) error {
	return svc.repo.SetCodeArchived(ctx, id, true)
}

func (svc *Service) Unarchive(ctx context.Context, id string) error {
	return svc.repo.SetCodeArchived(ctx, id, false)
}

func (svc *Service) ArchiveUsed(ctx context.Context) (int, error) {
	return svc.repo.ArchiveUsedCodes(ctx)
}
