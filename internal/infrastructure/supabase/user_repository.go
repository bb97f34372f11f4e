package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// userRow mirrors the remote user table's column casing.
type userRow struct {
	ID           any    `json:"ID,omitempty"`
	Username     string `json:"USERNAME"`
	Email        string `json:"EMAIL,omitempty"`
	Phone        string `json:"PHONE,omitempty"`
	PasswordHash string `json:"PASSWORD_HASH,omitempty"`
	Role         string `json:"USER_ROLE,omitempty"`
	Status       string `json:"STATUS,omitempty"`
	ClientID     any    `json:"CLIENT_ID,omitempty"`
	BusinessName string `json:"BUSINESSNAME,omitempty"`
	ExpDate      string `json:"EXP_DATE,omitempty"`
	LastLogin    string `json:"LAST_LOGIN,omitempty"`
}

type UserRepository struct {
	client    *Client
	table     string
	verifyRPC string
}

func NewUserRepository(client *Client, table, verifyRPC string) *UserRepository {
	if table == "" {
		table = "userfile"
	}
	if verifyRPC == "" {
		verifyRPC = "verify_user_password"
	}
	return &UserRepository{client: client, table: table, verifyRPC: verifyRPC}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "USERNAME", "eq."+username)
}

// SearchByUsername is the fuzzy fallback: one case-insensitive substring
// search, first row wins.
func (r *UserRepository) SearchByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "USERNAME", "ilike.*"+username+"*")
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "EMAIL", "ilike."+email)
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, "PHONE", "eq."+phone)
}

func (r *UserRepository) findOne(ctx context.Context, column, filter string) (*domain.User, error) {
	q := url.Values{}
	q.Set(column, filter)
	q.Set("limit", "1")

	var rows []userRow
	if err := r.client.Select(ctx, r.table, q, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := userRow{
		Username:     user.Username,
		Email:        user.Email,
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Status:       user.Status,
		BusinessName: user.BusinessName,
	}
	if user.ClientID != "" {
		row.ClientID = user.ClientID
	}

	var created []userRow
	if err := r.client.Insert(ctx, r.table, []userRow{row}, &created); err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusConflict {
			return nil, domain.ErrUserExists
		}
		return nil, err
	}
	if len(created) == 0 {
		return nil, &domain.UpstreamError{StatusCode: http.StatusOK, Message: "insert returned no representation"}
	}
	return created[0].toDomain(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string) error {
	q := url.Values{}
	q.Set("USERNAME", "eq."+username)
	body := map[string]string{"LAST_LOGIN": time.Now().UTC().Format(time.RFC3339)}
	return r.client.Update(ctx, r.table, q, body, nil)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	q := url.Values{}
	q.Set("USERNAME", "eq."+username)
	body := map[string]string{"PASSWORD_HASH": passwordHash}
	return r.client.Update(ctx, r.table, q, body, nil)
}

// Verify delegates password verification to the remote procedure, invoked
// with the located username and service-level credentials. A 404 from the
// RPC endpoint means the procedure is missing, which is a provisioning
// problem and not a credentials problem.
func (r *UserRepository) Verify(ctx context.Context, username, password string) (*ports.VerifyResult, error) {
	args := map[string]string{
		"p_username": username,
		"p_password": password,
	}

	var result struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		User    map[string]any `json:"user"`
	}
	if err := r.client.RPC(ctx, r.verifyRPC, args, &result); err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) && ue.StatusCode == http.StatusNotFound {
			return nil, domain.ErrAuthServiceUnavailable
		}
		return nil, err
	}

	return &ports.VerifyResult{
		Success: result.Success,
		Message: result.Message,
		User:    result.User,
	}, nil
}

// CreditExpiry reads the client user's expiry date for the credit gate.
func (r *UserRepository) CreditExpiry(ctx context.Context, username string) (time.Time, error) {
	user, err := r.findOne(ctx, "USERNAME", "eq."+username)
	if err != nil {
		return time.Time{}, err
	}
	if user.CreditExpiry.IsZero() {
		return time.Time{}, fmt.Errorf("no expiry date on record for %s", username)
	}
	return user.CreditExpiry, nil
}

func (row *userRow) toDomain() *domain.User {
	u := &domain.User{
		ID:           stringify(row.ID),
		Username:     row.Username,
		Email:        row.Email,
		Phone:        row.Phone,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		Status:       row.Status,
		ClientID:     stringify(row.ClientID),
		BusinessName: row.BusinessName,
	}
	if row.ExpDate != "" {
		if t, err := parseDate(row.ExpDate); err == nil {
			u.CreditExpiry = t
		}
	}
	if row.LastLogin != "" {
		if t, err := time.Parse(time.RFC3339, row.LastLogin); err == nil {
			u.LastLogin = t
		}
	}
	return u
}

// parseDate accepts both date-only and full timestamp column values.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// stringify normalises numeric or string IDs coming back from PostgREST.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return fmt.Sprintf("%.0f", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
