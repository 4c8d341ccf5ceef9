package dummydb

import (
	"context"
	"sort"

	"github.com/heliumhq/dashboard-api/core/invite"
)

type inviteRepository struct {
	db *inviteTable
}

var _ invite.Repository = (*inviteRepository)(nil) // interface compliance check

func NewInviteRepository(db *DB) invite.Repository {
	return &inviteRepository{db: db.invite}
}

func (repo *inviteRepository) CreateCodes(ctx context.Context, codes []invite.Code) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for i := range codes {
		code := codes[i]
		repo.db.table[code.ID] = &code
	}
	return nil
}

func (repo *inviteRepository) QueryAllCodes(ctx context.Context) ([]invite.Code, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	codes := make([]invite.Code, 0, len(repo.db.table))
	for _, c := range repo.db.table {
		codes = append(codes, *c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].CreatedAt.After(codes[j].CreatedAt) })
	return codes, nil
}

func (repo *inviteRepository) DeleteCodeByID(ctx context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return invite.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *inviteRepository) SetCodeArchived(ctx context.Context, id string, archived bool) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	c, ok := repo.db.table[id]
	if !ok {
		return invite.ErrNotFound
	}
	c.IsArchived = archived
	return nil
}

func (repo *inviteRepository) ArchiveUsedCodes(ctx context.Context) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int
	for _, c := range repo.db.table {
		if c.IsUsed && !c.IsArchived {
			c.IsArchived = true
			n++
		}
	}
	return n, nil
}
