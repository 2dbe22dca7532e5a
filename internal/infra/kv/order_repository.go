package kv

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shophub/internal/domain/entity"
	"shophub/internal/domain/repository"
	"shophub/internal/errors"
)

const orderLedgerKey = "orders/ledger.json"

// orderRepository persists the whole order ledger as one document, newest
// order first.
type orderRepository struct {
	store *Store
	mu    sync.Mutex
}

// NewOrderRepository creates an order repository backed by the KV store.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (r *orderRepository) loadLedger(ctx context.Context) ([]*entity.Order, error) {
	var ledger []*entity.Order
	if err := r.store.GetJSON(ctx, orderLedgerKey, &ledger); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return ledger, nil
}

func (r *orderRepository) Save(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, err := r.loadLedger(ctx)
	if err != nil {
		return err
	}

	ledger = append([]*entity.Order{order}, ledger...)

	return r.store.SetJSON(ctx, orderLedgerKey, ledger)
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	ledger, err := r.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	for _, order := range ledger {
		if order.ID == orderID {
			return order, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	ledger, err := r.loadLedger(ctx)
	if err != nil {
		return nil, err
	}

	var orders []*entity.Order
	for _, order := range ledger {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ledger, err := r.loadLedger(ctx)
	if err != nil {
		return err
	}

	for i, existing := range ledger {
		if existing.ID == order.ID {
			ledger[i] = order

			return r.store.SetJSON(ctx, orderLedgerKey, ledger)
		}
	}

	return repository.ErrOrderNotFound
}
