package waitlist

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("waitlist entry not found")

type (
	Repository interface {
		// QueryAllEntries returns entries most recently joined first.
		QueryAllEntries(ctx context.Context) ([]Entry, error)
		ArchiveEntriesByID(ctx context.Context, ids []string) (int, error)
		// ArchiveNotifiedEntries archives every notified, unarchived entry.
		ArchiveNotifiedEntries(ctx context.Context) (int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Entry, error) {
	return svc.repo.QueryAllEntries(ctx)
}

// Archive archives the given entries; with no IDs it archives every entry
// that has already been notified.
func (svc *Service) Archive(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return svc.repo.ArchiveNotifiedEntries(ctx)
	}
	return svc.repo.ArchiveEntriesByID(ctx, ids)
}
