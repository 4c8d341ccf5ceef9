package dummydb

import (
	"context"
	"sort"

	"github.com/heliumhq/dashboard-api/core/credit"
)

type creditRepository struct {
	db *creditTable
}

var _ credit.Repository = (*creditRepository)(nil) // interface compliance check

func NewCreditRepository(db *DB) credit.Repository {
	return &creditRepository{db: db.credit}
}

func (repo *creditRepository) GetBalanceByUserID(ctx context.Context, userID string) (credit.Balance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if b, ok := repo.db.balances[userID]; ok {
		return *b, nil
	}
	return credit.Balance{}, credit.ErrNotFound
}

func (repo *creditRepository) CreateBalance(ctx context.Context, b credit.Balance) (credit.Balance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.balances[b.UserID] = &b
	return b, nil
}

func (repo *creditRepository) UpdateBalance(ctx context.Context, b credit.Balance) (credit.Balance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.balances[b.UserID]; !ok {
		return credit.Balance{}, credit.ErrNotFound
	}
	repo.db.balances[b.UserID] = &b
	return b, nil
}

func (repo *creditRepository) QueryBalances(ctx context.Context, userID string) ([]credit.Balance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	balances := make([]credit.Balance, 0, len(repo.db.balances))
	for _, b := range repo.db.balances {
		if userID != "" && b.UserID != userID {
			continue
		}
		balances = append(balances, *b)
	}
	sort.Slice(balances, func(i, j int) bool { return balances[i].LastUpdated.After(balances[j].LastUpdated) })
	return balances, nil
}

func (repo *creditRepository) QueryPurchases(ctx context.Context, status string) ([]credit.Purchase, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	purchases := make([]credit.Purchase, 0, len(repo.db.purchases))
	for _, p := range repo.db.purchases {
		if status != "" && p.Status != status {
			continue
		}
		purchases = append(purchases, p)
	}
	sort.Slice(purchases, func(i, j int) bool { return purchases[i].CreatedAt.After(purchases[j].CreatedAt) })
	return purchases, nil
}
