package dummydb

import (
	"sync"

	"github.com/heliumhq/dashboard-api/core/activity"
	"github.com/heliumhq/dashboard-api/core/credit"
	"github.com/heliumhq/dashboard-api/core/invite"
	"github.com/heliumhq/dashboard-api/core/profile"
	"github.com/heliumhq/dashboard-api/core/waitlist"
)

type (
	DB struct {
		profile  *profileTable
		credit   *creditTable
		invite   *inviteTable
		waitlist *waitlistTable
		usage    *usageTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile // by user ID
	}

	creditTable struct {
		sync.RWMutex
		balances  map[string]*credit.Balance // by user ID
		purchases []credit.Purchase
	}

	inviteTable struct {
		sync.RWMutex
		table map[string]*invite.Code // by ID
	}

	waitlistTable struct {
		sync.RWMutex
		table map[string]*waitlist.Entry // by ID
	}

	usageTable struct {
		sync.RWMutex
		events []activity.Event
	}
)

func Open() (*DB, error) {
	db := &DB{
		profile:  &profileTable{table: make(map[string]*profile.Profile)},
		credit:   &creditTable{balances: make(map[string]*credit.Balance)},
		invite:   &inviteTable{table: make(map[string]*invite.Code)},
		waitlist: &waitlistTable{table: make(map[string]*waitlist.Entry)},
		usage:    &usageTable{},
	}
	return db, nil
}

// Seed helpers for tables that have no create operation in their
// repository interface; tests use these to set up fixtures.

func (db *DB) SeedPurchases(purchases ...credit.Purchase) {
	db.credit.Lock()
	defer db.credit.Unlock()
	db.credit.purchases = append(db.credit.purchases, purchases...)
}

func (db *DB) SeedWaitlist(entries ...waitlist.Entry) {
	db.waitlist.Lock()
	defer db.waitlist.Unlock()
	for i := range entries {
		e := entries[i]
		db.waitlist.table[e.ID] = &e
	}
}

func (db *DB) SeedUsage(events ...activity.Event) {
	db.usage.Lock()
	defer db.usage.Unlock()
	db.usage.events = append(db.usage.events, events...)
}
