package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type repoStub struct {
	entries map[string]Entry
}

func newRepoStub(entries ...Entry) *repoStub {
	r := &repoStub{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		r.entries[e.ID] = e
	}
	return r
}

func (r *repoStub) QueryAllEntries(context.Context) ([]Entry, error) {
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *repoStub) ArchiveEntriesByID(_ context.Context, ids []string) (int, error) {
	var n int
	for _, id := range ids {
		if e, ok := r.entries[id]; ok && !e.IsArchived {
			e.IsArchived = true
			r.entries[id] = e
			n++
		}
	}
	return n, nil
}

func (r *repoStub) ArchiveNotifiedEntries(context.Context) (int, error) {
	var n int
	for id, e := range r.entries {
		if e.IsNotified && !e.IsArchived {
			e.IsArchived = true
			r.entries[id] = e
			n++
		}
	}
	return n, nil
}

func Test_Service_Archive(t *testing.T) {
	seed := func() *repoStub {
		return newRepoStub(
			Entry{ID: "w1", Email: "a@test.io", IsNotified: true},
			Entry{ID: "w2", Email: "b@test.io", IsNotified: true, IsArchived: true},
			Entry{ID: "w3", Email: "c@test.io"},
		)
	}

	t.Run("by ID", func(t *testing.T) {
		repo := seed()
		n, err := NewService(repo).Archive(context.Background(), []string{"w3"})
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.True(t, repo.entries["w3"].IsArchived)
	})

	t.Run("no IDs archives every notified entry", func(t *testing.T) {
		repo := seed()
		n, err := NewService(repo).Archive(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.True(t, repo.entries["w1"].IsArchived)
		assert.False(t, repo.entries["w3"].IsArchived, "un-notified entries stay")
	})
}
