package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// OrderService proxies order CRUD with role scoping and enforces the order
// status state machine on updates.
type OrderService struct {
	repo ports.OrderRepository
	log  zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, log zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, log: log}
}

func (s *OrderService) ListOrders(ctx context.Context, actor ports.Actor, clientID string) ([]domain.Order, error) {
	scoped, err := scopeClientID(actor, clientID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListOrders(ctx, scoped)
}

func (s *OrderService) GetOrder(ctx context.Context, actor ports.Actor, id string) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsStaff(actor.Role) && order.ClientID != actor.ClientID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, actor ports.Actor, order *domain.Order) (*domain.Order, error) {
	scoped, err := scopeClientID(actor, order.ClientID)
	if err != nil {
		return nil, err
	}
	order.ClientID = scoped
	if order.Status == "" {
		order.Status = domain.OrderPending
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("order_id", created.ID).Str("client_id", created.ClientID).Msg("order created")
	return created, nil
}

// UpdateStatus validates the transition against the current order state
// before forwarding the change.
func (s *OrderService) UpdateStatus(ctx context.Context, actor ports.Actor, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}

	order.Status = status
	s.log.Info().Str("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, actor ports.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.DeleteOrder(ctx, id)
}
