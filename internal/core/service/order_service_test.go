package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

type memOrderRepo struct {
	orders map[string]*domain.Order
	nextID int
}

func newMemOrderRepo(orders ...*domain.Order) *memOrderRepo {
	r := &memOrderRepo{orders: make(map[string]*domain.Order)}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *memOrderRepo) ListOrders(_ context.Context, clientID string) ([]domain.Order, error) {
	out := []domain.Order{}
	for _, o := range r.orders {
		if clientID == "" || o.ClientID == clientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *memOrderRepo) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.nextID++
	clone := *order
	clone.ID = strconv.Itoa(r.nextID)
	r.orders[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memOrderRepo) UpdateOrderStatus(_ context.Context, id string, status domain.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memOrderRepo) DeleteOrder(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func TestCreateOrder_DefaultsToPending(t *testing.T) {
	repo := newMemOrderRepo()
	svc := NewOrderService(repo, zerolog.Nop())

	created, err := svc.CreateOrder(context.Background(), clientActor, &domain.Order{Total: 12.50})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if created.Status != domain.OrderPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}
	if created.ClientID != "c1" {
		t.Fatalf("order must be pinned to the actor's client, got %q", created.ClientID)
	}
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := newMemOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.OrderPending})
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.UpdateStatus(context.Background(), clientActor, "o1", domain.OrderConfirmed)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.Status != domain.OrderConfirmed {
		t.Fatalf("expected confirmed, got %s", order.Status)
	}
	if repo.orders["o1"].Status != domain.OrderConfirmed {
		t.Fatalf("repository not updated")
	}
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	cases := []struct {
		from domain.OrderStatus
		to   domain.OrderStatus
	}{
		{domain.OrderPending, domain.OrderDelivering},
		{domain.OrderCompleted, domain.OrderPending},
		{domain.OrderCancelled, domain.OrderConfirmed},
		{domain.OrderDelivering, domain.OrderCancelled},
	}

	for _, tc := range cases {
		repo := newMemOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: tc.from})
		svc := NewOrderService(repo, zerolog.Nop())

		_, err := svc.UpdateStatus(context.Background(), adminActor, "o1", tc.to)
		if !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("%s -> %s: expected ErrInvalidTransition, got %v", tc.from, tc.to, err)
		}
		if repo.orders["o1"].Status != tc.from {
			t.Fatalf("%s -> %s: status must not change on rejection", tc.from, tc.to)
		}
	}
}

func TestGetOrder_CrossClientForbidden(t *testing.T) {
	repo := newMemOrderRepo(&domain.Order{ID: "o1", ClientID: "c2", Status: domain.OrderPending})
	svc := NewOrderService(repo, zerolog.Nop())

	if _, err := svc.GetOrder(context.Background(), clientActor, "o1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetOrder(context.Background(), agentActor, "o1"); err != nil {
		t.Fatalf("staff read: %v", err)
	}
}

func TestDeleteOrder_AdminOnly(t *testing.T) {
	repo := newMemOrderRepo(&domain.Order{ID: "o1", ClientID: "c1", Status: domain.OrderCancelled})
	svc := NewOrderService(repo, zerolog.Nop())

	if err := svc.DeleteOrder(context.Background(), agentActor, "o1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("agent delete must fail, got %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), clientActor, "o1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client delete must fail, got %v", err)
	}
	if err := svc.DeleteOrder(context.Background(), adminActor, "o1"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}
