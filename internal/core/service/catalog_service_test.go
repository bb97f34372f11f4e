package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

type memCatalogRepo struct {
	clients    map[string]*domain.Client
	categories map[string]*domain.Category
	menu       map[string]*domain.MenuItem
	nextID     int

	listedCategoryClient string
	listedMenuClient     string
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		clients:    make(map[string]*domain.Client),
		categories: make(map[string]*domain.Category),
		menu:       make(map[string]*domain.MenuItem),
	}
}

func (r *memCatalogRepo) id() string {
	r.nextID++
	return strconv.Itoa(r.nextID)
}

func (r *memCatalogRepo) ListClients(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memCatalogRepo) GetClient(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCatalogRepo) CreateClient(_ context.Context, client *domain.Client) (*domain.Client, error) {
	clone := *client
	clone.ID = r.id()
	r.clients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) UpdateClient(_ context.Context, id string, client *domain.Client) (*domain.Client, error) {
	if _, ok := r.clients[id]; !ok {
		return nil, domain.ErrNotFound
	}
	clone := *client
	clone.ID = id
	r.clients[id] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) DeleteClient(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *memCatalogRepo) ListCategories(_ context.Context, clientID string) ([]domain.Category, error) {
	r.listedCategoryClient = clientID
	out := []domain.Category{}
	for _, c := range r.categories {
		if clientID == "" || c.ClientID == clientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetCategory(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCatalogRepo) CreateCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	clone := *category
	clone.ID = r.id()
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) UpdateCategory(_ context.Context, id string, category *domain.Category) (*domain.Category, error) {
	if _, ok := r.categories[id]; !ok {
		return nil, domain.ErrNotFound
	}
	clone := *category
	clone.ID = id
	r.categories[id] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) DeleteCategory(_ context.Context, id string) error {
	delete(r.categories, id)
	return nil
}

func (r *memCatalogRepo) ListMenuItems(_ context.Context, clientID string) ([]domain.MenuItem, error) {
	r.listedMenuClient = clientID
	out := []domain.MenuItem{}
	for _, m := range r.menu {
		if clientID == "" || m.ClientID == clientID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memCatalogRepo) GetMenuItem(_ context.Context, id string) (*domain.MenuItem, error) {
	m, ok := r.menu[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *memCatalogRepo) CreateMenuItem(_ context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	clone := *item
	clone.ID = r.id()
	r.menu[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) UpdateMenuItem(_ context.Context, id string, item *domain.MenuItem) (*domain.MenuItem, error) {
	if _, ok := r.menu[id]; !ok {
		return nil, domain.ErrNotFound
	}
	clone := *item
	clone.ID = id
	r.menu[id] = &clone
	out := clone
	return &out, nil
}

func (r *memCatalogRepo) DeleteMenuItem(_ context.Context, id string) error {
	delete(r.menu, id)
	return nil
}

var (
	adminActor  = ports.Actor{Role: domain.RoleAdmin}
	agentActor  = ports.Actor{Role: domain.RoleAgent}
	clientActor = ports.Actor{Role: domain.RoleClient, ClientID: "c1"}
)

func TestScopeClientID(t *testing.T) {
	cases := []struct {
		name      string
		actor     ports.Actor
		requested string
		want      string
		wantErr   bool
	}{
		{"staff passthrough", adminActor, "c9", "c9", false},
		{"staff unscoped", agentActor, "", "", false},
		{"client pinned", clientActor, "", "c1", false},
		{"client own id", clientActor, "c1", "c1", false},
		{"client foreign id", clientActor, "c2", "", true},
		{"client without identity", ports.Actor{Role: domain.RoleClient}, "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := scopeClientID(tc.actor, tc.requested)
			if tc.wantErr {
				if !errors.Is(err, domain.ErrForbidden) {
					t.Fatalf("expected ErrForbidden, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestClients_StaffOnly(t *testing.T) {
	repo := newMemCatalogRepo()
	svc := NewCatalogService(repo, zerolog.Nop())

	if _, err := svc.ListClients(context.Background(), clientActor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client role must not list clients, got %v", err)
	}
	if _, err := svc.CreateClient(context.Background(), clientActor, &domain.Client{BusinessName: "x"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client role must not create clients, got %v", err)
	}

	created, err := svc.CreateClient(context.Background(), agentActor, &domain.Client{BusinessName: "Taco Town"})
	if err != nil {
		t.Fatalf("agent create: %v", err)
	}

	// Deletion is tighter than the rest: ADMIN only.
	if err := svc.DeleteClient(context.Background(), agentActor, created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("agent must not delete clients, got %v", err)
	}
	if err := svc.DeleteClient(context.Background(), adminActor, created.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
}

func TestClients_SelfAccess(t *testing.T) {
	repo := newMemCatalogRepo()
	repo.clients["c1"] = &domain.Client{ID: "c1", BusinessName: "Mine"}
	repo.clients["c2"] = &domain.Client{ID: "c2", BusinessName: "Theirs"}
	svc := NewCatalogService(repo, zerolog.Nop())

	if _, err := svc.GetClient(context.Background(), clientActor, "c1"); err != nil {
		t.Fatalf("client must read its own record: %v", err)
	}
	if _, err := svc.GetClient(context.Background(), clientActor, "c2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client must not read another client, got %v", err)
	}
}

func TestCategories_ClientPinnedToOwnClientID(t *testing.T) {
	repo := newMemCatalogRepo()
	svc := NewCatalogService(repo, zerolog.Nop())

	created, err := svc.CreateCategory(context.Background(), clientActor, &domain.Category{Name: "Starters"})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if created.ClientID != "c1" {
		t.Fatalf("category must be pinned to the actor's client, got %q", created.ClientID)
	}

	if _, err := svc.CreateCategory(context.Background(), clientActor, &domain.Category{Name: "X", ClientID: "c2"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-client create must fail, got %v", err)
	}

	if _, err := svc.ListCategories(context.Background(), clientActor, ""); err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if repo.listedCategoryClient != "c1" {
		t.Fatalf("client listing must be scoped, repo saw %q", repo.listedCategoryClient)
	}
}

func TestCategories_OwnershipChecks(t *testing.T) {
	repo := newMemCatalogRepo()
	repo.categories["k1"] = &domain.Category{ID: "k1", ClientID: "c1", Name: "Starters"}
	repo.categories["k2"] = &domain.Category{ID: "k2", ClientID: "c2", Name: "Desserts"}
	svc := NewCatalogService(repo, zerolog.Nop())

	// The stored row's owner decides, not the request payload: a client
	// cannot touch a foreign category even by naming its own client_id.
	if _, err := svc.UpdateCategory(context.Background(), clientActor, "k2", &domain.Category{Name: "Hijack", ClientID: "c1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign category update must fail, got %v", err)
	}
	if err := svc.DeleteCategory(context.Background(), clientActor, "k2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign category delete must fail, got %v", err)
	}
	if got := repo.categories["k2"].Name; got != "Desserts" {
		t.Fatalf("foreign category must be untouched, got %q", got)
	}

	if _, err := svc.UpdateCategory(context.Background(), clientActor, "k1", &domain.Category{ClientID: "c1", Name: "Renamed"}); err != nil {
		t.Fatalf("own category update: %v", err)
	}
	if err := svc.DeleteCategory(context.Background(), clientActor, "k1"); err != nil {
		t.Fatalf("own category delete: %v", err)
	}

	if _, err := svc.UpdateCategory(context.Background(), adminActor, "missing", &domain.Category{Name: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown category must report not found, got %v", err)
	}
}

func TestMenuItems_OwnershipChecks(t *testing.T) {
	repo := newMemCatalogRepo()
	repo.menu["m1"] = &domain.MenuItem{ID: "m1", ClientID: "c1", Name: "Bao", Price: 5}
	repo.menu["m2"] = &domain.MenuItem{ID: "m2", ClientID: "c2", Name: "Ramen", Price: 9}
	svc := NewCatalogService(repo, zerolog.Nop())

	if _, err := svc.GetMenuItem(context.Background(), clientActor, "m1"); err != nil {
		t.Fatalf("own item read: %v", err)
	}
	if _, err := svc.GetMenuItem(context.Background(), clientActor, "m2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign item read must fail, got %v", err)
	}
	if _, err := svc.UpdateMenuItem(context.Background(), clientActor, "m2", &domain.MenuItem{Name: "Hijack"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign item update must fail, got %v", err)
	}
	if err := svc.DeleteMenuItem(context.Background(), clientActor, "m2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign item delete must fail, got %v", err)
	}

	// Staff operate across clients freely.
	if _, err := svc.UpdateMenuItem(context.Background(), adminActor, "m2", &domain.MenuItem{ClientID: "c2", Name: "Ramen XL", Price: 11}); err != nil {
		t.Fatalf("staff update: %v", err)
	}
}
