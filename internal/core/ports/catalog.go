package ports

import (
	"context"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// CatalogRepository proxies client, category, and menu rows to the remote
// backend's REST API.
type CatalogRepository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, client *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error

	ListCategories(ctx context.Context, clientID string) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (*domain.Category, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id string, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	ListMenuItems(ctx context.Context, clientID string) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id string, item *domain.MenuItem) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id string) error
}

// Actor is the authenticated caller a service scopes data access by.
type Actor struct {
	Role     string
	ClientID string
}

// CatalogService applies role scoping on top of the repository: staff roles
// see everything, client roles only their own client_id.
type CatalogService interface {
	ListClients(ctx context.Context, actor Actor) ([]domain.Client, error)
	GetClient(ctx context.Context, actor Actor, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, actor Actor, client *domain.Client) (*domain.Client, error)
	UpdateClient(ctx context.Context, actor Actor, id string, client *domain.Client) (*domain.Client, error)
	DeleteClient(ctx context.Context, actor Actor, id string) error

	ListCategories(ctx context.Context, actor Actor, clientID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, actor Actor, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, actor Actor, id string, category *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, actor Actor, id string) error

	ListMenuItems(ctx context.Context, actor Actor, clientID string) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, actor Actor, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, actor Actor, item *domain.MenuItem) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, actor Actor, id string, item *domain.MenuItem) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, actor Actor, id string) error
}
