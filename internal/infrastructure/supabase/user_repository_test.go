package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

func testRepo(t *testing.T, handler http.HandlerFunc) (*UserRepository, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL, ServiceKey: "svc-key"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewUserRepository(client, "userfile", "verify_user_password"), srv
}

func TestFindByUsername_FilterAndHeaders(t *testing.T) {
	var gotQuery, gotAPIKey, gotAuth string
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAPIKey = r.Header.Get("apikey")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"ID": 7.0, "USERNAME": "Alice", "USER_ROLE": "ADMIN", "CLIENT_ID": 12.0,
		}})
	})

	user, err := repo.FindByUsername(context.Background(), "Alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if user.ID != "7" || user.Username != "Alice" || user.ClientID != "12" {
		t.Fatalf("numeric columns must be normalised to strings: %+v", user)
	}

	if gotQuery != "USERNAME=eq.Alice&limit=1" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if gotAPIKey != "svc-key" || gotAuth != "Bearer svc-key" {
		t.Fatalf("service credentials not sent: %q %q", gotAPIKey, gotAuth)
	}
}

func TestSearchByUsername_UsesIlike(t *testing.T) {
	var gotQuery string
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("USERNAME")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"USERNAME": "boB"}})
	})

	if _, err := repo.SearchByUsername(context.Background(), "bOb"); err != nil {
		t.Fatalf("SearchByUsername: %v", err)
	}
	if gotQuery != "ilike.*bOb*" {
		t.Fatalf("expected substring ilike filter, got %q", gotQuery)
	}
}

func TestFindByUsername_EmptyResult(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	})

	_, err := repo.FindByUsername(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestVerify_PayloadAndResult(t *testing.T) {
	var gotPath string
	var gotArgs map[string]string
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotArgs)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"ID": 7.0, "USERNAME": "alice"},
		})
	})

	result, err := repo.Verify(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotPath != "/rest/v1/rpc/verify_user_password" {
		t.Fatalf("unexpected RPC path: %s", gotPath)
	}
	if gotArgs["p_username"] != "alice" || gotArgs["p_password"] != "secret" {
		t.Fatalf("unexpected RPC args: %v", gotArgs)
	}
	if !result.Success {
		t.Fatalf("expected success")
	}
	if result.User["USERNAME"] != "alice" {
		t.Fatalf("raw user object must be preserved: %v", result.User)
	}
}

func TestVerify_MissingRPCIsUnavailable(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"function not found"}`, http.StatusNotFound)
	})

	_, err := repo.Verify(context.Background(), "alice", "secret")
	if !errors.Is(err, domain.ErrAuthServiceUnavailable) {
		t.Fatalf("expected ErrAuthServiceUnavailable, got %v", err)
	}
}

func TestVerify_OtherUpstreamErrorsKeepStatus(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"overloaded"}`, http.StatusInternalServerError)
	})

	_, err := repo.Verify(context.Background(), "alice", "secret")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected UpstreamError(500), got %v", err)
	}
	if ue.Message != "overloaded" {
		t.Fatalf("PostgREST message not extracted: %q", ue.Message)
	}
}

func TestCreditExpiry_DateOnlyColumn(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{
			"USERNAME": "alice", "EXP_DATE": "2025-04-01",
		}})
	})

	expiry, err := repo.CreditExpiry(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreditExpiry: %v", err)
	}
	if expiry.Format("2006-01-02") != "2025-04-01" {
		t.Fatalf("unexpected expiry: %v", expiry)
	}
}

func TestCreditExpiry_NoDateOnRecord(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{{"USERNAME": "alice"}})
	})

	if _, err := repo.CreditExpiry(context.Background(), "alice"); err == nil {
		t.Fatalf("expected error when no expiry date is recorded")
	}
}

func TestCreate_ConflictMapsToUserExists(t *testing.T) {
	repo, _ := testRepo(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"duplicate key value"}`, http.StatusConflict)
	})

	_, err := repo.Create(context.Background(), &domain.User{Username: "alice"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
