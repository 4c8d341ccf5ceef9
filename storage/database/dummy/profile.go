package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/heliumhq/dashboard-api/core/profile"
)

type profileRepository struct {
	db *profileTable
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) profile.Repository {
	return &profileRepository{db: db.profile}
}

func (repo *profileRepository) query() []profile.Profile {
	profiles := make([]profile.Profile, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		profiles = append(profiles, *p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })
	return profiles
}

func (repo *profileRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.db.table {
		if p.Email == email {
			return profile.ErrEmailExists
		}
	}
	return nil
}

func (repo *profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[p.UserID] = &p
	return p, nil
}

func (repo *profileRepository) QueryAllProfiles(ctx context.Context) ([]profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (profile.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[userID]; ok {
		return *p, nil
	}
	return profile.Profile{}, profile.ErrNotFound
}

func (repo *profileRepository) UpdateProfileMetadata(ctx context.Context, userID string, md profile.Metadata, updatedAt time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	p, ok := repo.db.table[userID]
	if !ok {
		return profile.ErrNotFound
	}
	if md.CreditsEmailSentAt.Valid {
		p.Metadata.CreditsEmailSentAt = md.CreditsEmailSentAt
	}
	if md.CreditsAssigned.Valid {
		p.Metadata.CreditsAssigned = md.CreditsAssigned
	}
	p.UpdatedAt = updatedAt
	return nil
}

func (repo *profileRepository) DeleteProfileByUserID(ctx context.Context, userID string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[userID]; !ok {
		return profile.ErrNotFound
	}
	delete(repo.db.table, userID)
	return nil
}

func (repo *profileRepository) QueryContacts(ctx context.Context, userIDs []string) ([]profile.Contact, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	contacts := make([]profile.Contact, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := repo.db.table[id]; ok {
			contacts = append(contacts, profile.Contact{UserID: p.UserID, Email: p.Email, FullName: p.FullName})
		}
	}
	return contacts, nil
}
