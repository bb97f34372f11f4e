package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/foodbao/admin-api/internal/core/domain"
)

const ordersTable = "orders"

// OrderRepository forwards order CRUD to PostgREST. Order lines are stored
// in a JSON column on the order row.
type OrderRepository struct {
	client *Client
}

func NewOrderRepository(client *Client) *OrderRepository {
	return &OrderRepository{client: client}
}

type orderRow struct {
	ID            any             `json:"ID,omitempty"`
	ClientID      any             `json:"CLIENT_ID,omitempty"`
	CustomerName  string          `json:"CUSTOMER_NAME,omitempty"`
	CustomerPhone string          `json:"CUSTOMER_PHONE,omitempty"`
	Items         json.RawMessage `json:"ITEMS,omitempty"`
	Total         float64         `json:"TOTAL"`
	Status        string          `json:"STATUS"`
	CreatedAt     string          `json:"CREATED_AT,omitempty"`
	UpdatedAt     string          `json:"UPDATED_AT,omitempty"`
}

func (row *orderRow) toDomain() domain.Order {
	o := domain.Order{
		ID:            stringify(row.ID),
		ClientID:      stringify(row.ClientID),
		CustomerName:  row.CustomerName,
		CustomerPhone: row.CustomerPhone,
		Total:         row.Total,
		Status:        domain.OrderStatus(row.Status),
	}
	if len(row.Items) > 0 {
		_ = json.Unmarshal(row.Items, &o.Items)
	}
	if row.CreatedAt != "" {
		if t, err := parseDate(row.CreatedAt); err == nil {
			o.CreatedAt = t
		}
	}
	if row.UpdatedAt != "" {
		if t, err := parseDate(row.UpdatedAt); err == nil {
			o.UpdatedAt = t
		}
	}
	return o
}

func orderToRow(o *domain.Order) orderRow {
	row := orderRow{
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		Total:         o.Total,
		Status:        string(o.Status),
	}
	if o.ClientID != "" {
		row.ClientID = o.ClientID
	}
	if len(o.Items) > 0 {
		if buf, err := json.Marshal(o.Items); err == nil {
			row.Items = buf
		}
	}
	return row
}

func (r *OrderRepository) ListOrders(ctx context.Context, clientID string) ([]domain.Order, error) {
	q := url.Values{}
	if clientID != "" {
		q.Set("CLIENT_ID", "eq."+clientID)
	}
	q.Set("order", "CREATED_AT.desc")

	var rows []orderRow
	if err := r.client.Select(ctx, ordersTable, q, &rows); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, rows[i].toDomain())
	}
	return orders, nil
}

func (r *OrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	q.Set("limit", "1")

	var rows []orderRow
	if err := r.client.Select(ctx, ordersTable, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	o := rows[0].toDomain()
	return &o, nil
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var created []orderRow
	if err := r.client.Insert(ctx, ordersTable, []orderRow{orderToRow(order)}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "insert returned no representation"}
	}
	o := created[0].toDomain()
	return &o, nil
}

func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	body := map[string]string{
		"STATUS":     string(status),
		"UPDATED_AT": time.Now().UTC().Format(time.RFC3339),
	}
	return r.client.Update(ctx, ordersTable, q, body, nil)
}

func (r *OrderRepository) DeleteOrder(ctx context.Context, id string) error {
	q := url.Values{}
	q.Set("ID", "eq."+id)
	return r.client.Delete(ctx, ordersTable, q)
}
