package service

import (
	"fmt"

	"github.com/foodbao/admin-api/internal/core/domain"
)

// reconcileProfile merges the verification RPC's user object with the row
// originally fetched from the user table. The RPC side is canonical for
// identity fields but its field casing is not stable (id/ID,
// username/USERNAME, …), so every field is read through a case-variant
// picker. client_id and business_name always come from the fetched row.
func reconcileProfile(rpcUser map[string]any, fetched *domain.User) *domain.User {
	profile := &domain.User{
		ID:           pick(rpcUser, "id", "ID"),
		Username:     pick(rpcUser, "username", "USERNAME"),
		Email:        pick(rpcUser, "email", "EMAIL"),
		Role:         pick(rpcUser, "role", "USER_ROLE", "ROLE"),
		Status:       pick(rpcUser, "status", "STATUS"),
		ClientID:     fetched.ClientID,
		BusinessName: fetched.BusinessName,
		CreditExpiry: fetched.CreditExpiry,
	}

	// The RPC may return a sparse object; backfill from the fetched row.
	if profile.ID == "" {
		profile.ID = fetched.ID
	}
	if profile.Username == "" {
		profile.Username = fetched.Username
	}
	if profile.Email == "" {
		profile.Email = fetched.Email
	}
	if profile.Role == "" {
		profile.Role = fetched.Role
	}
	if profile.Status == "" {
		profile.Status = fetched.Status
	}
	return profile
}

// pick returns the first present, non-empty key from the map, normalised to
// a string. Numeric IDs come back from JSON as float64.
func pick(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok || v == nil {
			continue
		}
		switch x := v.(type) {
		case string:
			if x != "" {
				return x
			}
		case float64:
			return fmt.Sprintf("%.0f", x)
		default:
			return fmt.Sprintf("%v", x)
		}
	}
	return ""
}
