package dummydb

import (
	"context"
	"sort"

	"github.com/heliumhq/dashboard-api/core/waitlist"
)

type waitlistRepository struct {
	db *waitlistTable
}

var _ waitlist.Repository = (*waitlistRepository)(nil) // interface compliance check

func NewWaitlistRepository(db *DB) waitlist.Repository {
	return &waitlistRepository{db: db.waitlist}
}

func (repo *waitlistRepository) QueryAllEntries(ctx context.Context) ([]waitlist.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	entries := make([]waitlist.Entry, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].JoinedAt.After(entries[j].JoinedAt) })
	return entries, nil
}

func (repo *waitlistRepository) ArchiveEntriesByID(ctx context.Context, ids []string) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int
	for _, id := range ids {
		if e, ok := repo.db.table[id]; ok && !e.IsArchived {
			e.IsArchived = true
			n++
		}
	}
	return n, nil
}

func (repo *waitlistRepository) ArchiveNotifiedEntries(ctx context.Context) (int, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var n int
	for _, e := range repo.db.table {
		if e.IsNotified && !e.IsArchived {
			e.IsArchived = true
			n++
		}
	}
	return n, nil
}
