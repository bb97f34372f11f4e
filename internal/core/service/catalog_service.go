package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// CatalogService proxies client/category/menu CRUD with role scoping: staff
// roles operate across clients, a client role only within its own client_id.
// The scoping is best-effort UX; the remote backend's row-level rules remain
// the actual boundary.
type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

// scopeClientID resolves which client_id the actor may touch. Staff may pass
// any (or none); a client is pinned to its own.
func scopeClientID(actor ports.Actor, requested string) (string, error) {
	if domain.IsStaff(actor.Role) {
		return requested, nil
	}
	if actor.ClientID == "" {
		return "", domain.ErrForbidden
	}
	if requested != "" && requested != actor.ClientID {
		return "", domain.ErrForbidden
	}
	return actor.ClientID, nil
}

// --- Clients (staff only) ---

func (s *CatalogService) ListClients(ctx context.Context, actor ports.Actor) ([]domain.Client, error) {
	if !domain.IsStaff(actor.Role) {
		return nil, domain.ErrForbidden
	}
	return s.repo.ListClients(ctx)
}

func (s *CatalogService) GetClient(ctx context.Context, actor ports.Actor, id string) (*domain.Client, error) {
	if !domain.IsStaff(actor.Role) && actor.ClientID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.GetClient(ctx, id)
}

func (s *CatalogService) CreateClient(ctx context.Context, actor ports.Actor, client *domain.Client) (*domain.Client, error) {
	if !domain.IsStaff(actor.Role) {
		return nil, domain.ErrForbidden
	}
	created, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("client_id", created.ID).Str("business", created.BusinessName).Msg("client created")
	return created, nil
}

func (s *CatalogService) UpdateClient(ctx context.Context, actor ports.Actor, id string, client *domain.Client) (*domain.Client, error) {
	if !domain.IsStaff(actor.Role) && actor.ClientID != id {
		return nil, domain.ErrForbidden
	}
	return s.repo.UpdateClient(ctx, id, client)
}

func (s *CatalogService) DeleteClient(ctx context.Context, actor ports.Actor, id string) error {
	if actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.repo.DeleteClient(ctx, id)
}

// --- Categories ---

func (s *CatalogService) ListCategories(ctx context.Context, actor ports.Actor, clientID string) ([]domain.Category, error) {
	scoped, err := scopeClientID(actor, clientID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, scoped)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actor ports.Actor, category *domain.Category) (*domain.Category, error) {
	scoped, err := scopeClientID(actor, category.ClientID)
	if err != nil {
		return nil, err
	}
	category.ClientID = scoped
	return s.repo.CreateCategory(ctx, category)
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actor ports.Actor, id string, category *domain.Category) (*domain.Category, error) {
	existing, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsStaff(actor.Role) && existing.ClientID != actor.ClientID {
		return nil, domain.ErrForbidden
	}
	return s.repo.UpdateCategory(ctx, id, category)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actor ports.Actor, id string) error {
	existing, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if !domain.IsStaff(actor.Role) && existing.ClientID != actor.ClientID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteCategory(ctx, id)
}

// --- Menu items ---

func (s *CatalogService) ListMenuItems(ctx context.Context, actor ports.Actor, clientID string) ([]domain.MenuItem, error) {
	scoped, err := scopeClientID(actor, clientID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListMenuItems(ctx, scoped)
}

func (s *CatalogService) GetMenuItem(ctx context.Context, actor ports.Actor, id string) (*domain.MenuItem, error) {
	item, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsStaff(actor.Role) && item.ClientID != actor.ClientID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

func (s *CatalogService) CreateMenuItem(ctx context.Context, actor ports.Actor, item *domain.MenuItem) (*domain.MenuItem, error) {
	scoped, err := scopeClientID(actor, item.ClientID)
	if err != nil {
		return nil, err
	}
	item.ClientID = scoped
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *CatalogService) UpdateMenuItem(ctx context.Context, actor ports.Actor, id string, item *domain.MenuItem) (*domain.MenuItem, error) {
	existing, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsStaff(actor.Role) && existing.ClientID != actor.ClientID {
		return nil, domain.ErrForbidden
	}
	return s.repo.UpdateMenuItem(ctx, id, item)
}

func (s *CatalogService) DeleteMenuItem(ctx context.Context, actor ports.Actor, id string) error {
	existing, err := s.repo.GetMenuItem(ctx, id)
	if err != nil {
		return err
	}
	if !domain.IsStaff(actor.Role) && existing.ClientID != actor.ClientID {
		return domain.ErrForbidden
	}
	return s.repo.DeleteMenuItem(ctx, id)
}
