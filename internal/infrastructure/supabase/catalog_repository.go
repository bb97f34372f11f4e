package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const (
	clientsTable    = "clients"
	categoriesTable = "categories"
	menuTable       = "menu_items"
)

// CatalogRepository forwards client/category/menu CRUD to PostgREST and
// reshapes the rows into canonical profiles.
type CatalogRepository struct {
	client *Client
}

func NewCatalogRepository(client *Client) *CatalogRepository {
	return &CatalogRepository{client: client}
}

// --- Clients ---

type clientRow struct {
	ID           any    `json:"ID,omitempty"`
	BusinessName string `json:"BUSINESSNAME"`
	ContactName  string `json:"CONTACTNAME,omitempty"`
	Email        string `json:"EMAIL,omitempty"`
	Phone        string `json:"PHONE,omitempty"`
	Address      string `json:"ADDRESS,omitempty"`
	LogoURL      string `json:"LOGO_URL,omitempty"`
	Active       bool   `json:"ACTIVE"`
	CreatedAt    string `json:"CREATED_AT,omitempty"`
}

func (row *clientRow) toDomain() domain.Client {
	c := domain.Client{
		ID:           stringify(row.ID),
		BusinessName: row.BusinessName,
		ContactName:  row.ContactName,
		Email:        row.Email,
		Phone:        row.Phone,
		Address:      row.Address,
		LogoURL:      row.LogoURL,
		Active:       row.Active,
	}
	if row.CreatedAt != "" {
		if t, err := parseDate(row.CreatedAt); err == nil {
			c.CreatedAt = t
		}
	}
	return c
}

func clientToRow(c *domain.Client) clientRow {
	return clientRow{
		BusinessName: c.BusinessName,
		ContactName:  c.ContactName,
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		LogoURL:      c.LogoURL,
		Active:       c.Active,
	}
}

func (r *CatalogRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	q := url.Values{}
	q.Set("order", "BUSINESSNAME.asc")

	var rows []clientRow
	if err := r.client.Select(ctx, clientsTable, q, &rows); err != nil {
		return nil, err
	}
	clients := make([]domain.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, rows[i].toDomain())
	}
	return clients, nil
}

func (r *CatalogRepository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	q.Set("limit", "1")

	var rows []clientRow
	if err := r.client.Select(ctx, clientsTable, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	c := rows[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	var created []clientRow
	if err := r.client.Insert(ctx, clientsTable, []clientRow{clientToRow(client)}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "insert returned no representation"}
	}
	c := created[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) UpdateClient(ctx context.Context, id string, client *domain.Client) (*domain.Client, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)

	var updated []clientRow
	if err := r.client.Update(ctx, clientsTable, q, clientToRow(client), &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, domain.ErrNotFound
	}
	c := updated[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) DeleteClient(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	return r.client.Delete(ctx, clientsTable, q)
}

// --- Categories ---

type categoryRow struct {
	ID        any    `json:"ID,omitempty"`
	ClientID  any    `json:"CLIENT_ID,omitempty"`
	Name      string `json:"NAME"`
	SortOrder int    `json:"SORT_ORDER,omitempty"`
	ImageURL  string `json:"IMAGE_URL,omitempty"`
	Active    bool   `json:"ACTIVE"`
}

func (row *categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID:        stringify(row.ID),
		ClientID:  stringify(row.ClientID),
		Name:      row.Name,
		SortOrder: row.SortOrder,
		ImageURL:  row.ImageURL,
		Active:    row.Active,
	}
}

func categoryToRow(c *domain.Category) categoryRow {
	row := categoryRow{
		Name:      c.Name,
		SortOrder: c.SortOrder,
		ImageURL:  c.ImageURL,
		Active:    c.Active,
	}
	if c.ClientID != "" {
		row.ClientID = c.ClientID
	}
	return row
}

func (r *CatalogRepository) ListCategories(ctx context.Context, clientID string) ([]domain.Category, error) {
	q := url.Values{}
	if clientID != "" {
		q.Set("CLIENT_ID", "eq."+clientID)
	}
	q.Set("order", "SORT_ORDER.asc")

	var rows []categoryRow
	if err := r.client.Select(ctx, categoriesTable, q, &rows); err != nil {
		return nil, err
	}
	categories := make([]domain.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, rows[i].toDomain())
	}
	return categories, nil
}

func (r *CatalogRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	q.Set("limit", "1")

	var rows []categoryRow
	if err := r.client.Select(ctx, categoriesTable, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	c := rows[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var created []categoryRow
	if err := r.client.Insert(ctx, categoriesTable, []categoryRow{categoryToRow(category)}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "insert returned no representation"}
	}
	c := created[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) UpdateCategory(ctx context.Context, id string, category *domain.Category) (*domain.Category, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)

	var updated []categoryRow
	if err := r.client.Update(ctx, categoriesTable, q, categoryToRow(category), &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, domain.ErrNotFound
	}
	c := updated[0].toDomain()
	return &c, nil
}

func (r *CatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	return r.client.Delete(ctx, categoriesTable, q)
}

// --- Menu items ---

type menuItemRow struct {
	ID          any     `json:"ID,omitempty"`
	ClientID    any     `json:"CLIENT_ID,omitempty"`
	CategoryID  any     `json:"CATEGORY_ID,omitempty"`
	Name        string  `json:"NAME"`
	Description string  `json:"DESCRIPTION,omitempty"`
	Price       float64 `json:"PRICE"`
	Currency    string  `json:"CURRENCY,omitempty"`
	ImageURL    string  `json:"IMAGE_URL,omitempty"`
	ImageID     string  `json:"IMAGE_ID,omitempty"`
	Available   bool    `json:"AVAILABLE"`
}

func (row *menuItemRow) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:          stringify(row.ID),
		ClientID:    stringify(row.ClientID),
		CategoryID:  stringify(row.CategoryID),
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Currency:    row.Currency,
		ImageURL:    row.ImageURL,
		ImageID:     row.ImageID,
		Available:   row.Available,
	}
}

func menuItemToRow(m *domain.MenuItem) menuItemRow {
	row := menuItemRow{
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Currency:    m.Currency,
		ImageURL:    m.ImageURL,
		ImageID:     m.ImageID,
		Available:   m.Available,
	}
	if m.ClientID != "" {
		row.ClientID = m.ClientID
	}
	if m.CategoryID != "" {
		row.CategoryID = m.CategoryID
	}
	return row
}

func (r *CatalogRepository) ListMenuItems(ctx context.Context, clientID string) ([]domain.MenuItem, error) {
	q := url.Values{}
	if clientID != "" {
		q.Set("CLIENT_ID", "eq."+clientID)
	}
	q.Set("order", "NAME.asc")

	var rows []menuItemRow
	if err := r.client.Select(ctx, menuTable, q, &rows); err != nil {
		return nil, err
	}
	items := make([]domain.MenuItem, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDomain())
	}
	return items, nil
}

func (r *CatalogRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	q.Set("limit", "1")

	var rows []menuItemRow
	if err := r.client.Select(ctx, menuTable, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	m := rows[0].toDomain()
	return &m, nil
}

func (r *CatalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) (*domain.MenuItem, error) {
	var created []menuItemRow
	if err := r.client.Insert(ctx, menuTable, []menuItemRow{menuItemToRow(item)}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "insert returned no representation"}
	}
	m := created[0].toDomain()
	return &m, nil
}

func (r *CatalogRepository) UpdateMenuItem(ctx context.Context, id string, item *domain.MenuItem) (*domain.MenuItem, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)

	var updated []menuItemRow
	if err := r.client.Update(ctx, menuTable, q, menuItemToRow(item), &updated); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, domain.ErrNotFound
	}
	m := updated[0].toDomain()
	return &m, nil
}

func (r *CatalogRepository) DeleteMenuItem(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	return r.client.Delete(ctx, menuTable, q)
}
