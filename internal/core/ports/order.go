package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// OrderRepository proxies order rows to the remote backend's REST API.
type OrderRepository interface {
	ListOrders(ctx context.Context, clientID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error
	DeleteOrder(ctx context.Context, id string) error
}

// OrderService applies role scoping and the order status state machine.
type OrderService interface {
	ListOrders(ctx context.Context, actor Actor, clientID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, actor Actor, id string) (*domain.Order, error)
	CreateOrder(ctx context.Context, actor Actor, order *domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, status domain.OrderStatus) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor Actor, id string) error
}
