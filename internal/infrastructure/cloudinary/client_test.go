package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(Config{CloudName: "demo", APIKey: "key", APISecret: "secret"}, zerolog.Nop())
}

func TestSign_SortedParams(t *testing.T) {
	c := testClient(t)

	got := c.sign(map[string]string{
		"timestamp": "1700000000",
		"folder":    "foodbao",
	})

	// Keys sorted alphabetically, joined with '&', secret appended.
	sum := sha1.Sum([]byte("folder=foodbao&timestamp=1700000000" + "secret"))
	want := hex.EncodeToString(sum[:])
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSign_OrderIndependent(t *testing.T) {
	c := testClient(t)

	a := c.sign(map[string]string{"a": "1", "b": "2", "c": "3"})
	b := c.sign(map[string]string{"c": "3", "a": "1", "b": "2"})
	if a != b {
		t.Fatalf("signature must not depend on map iteration order")
	}
}

func TestUpload_MissingCredentials(t *testing.T) {
	c := NewClient(Config{CloudName: "demo"}, zerolog.Nop())

	_, err := c.Upload(context.Background(), "menu.png", []byte("png"), "foodbao")
	var ce *domain.ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	for _, key := range []string{"CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET"} {
		found := false
		for _, m := range ce.Missing {
			if m == key {
				found = true
			}
		}
		if !found {
			t.Fatalf("missing keys should name %s: %v", key, ce.Missing)
		}
	}
}
