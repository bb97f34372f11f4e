package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCodec_MintDecode_Roundtrip(t *testing.T) {
	c := NewCodec()
	issued := time.Now().Unix()

	raw, err := c.Mint("42", "alice", "ADMIN")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := c.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.UserID != "42" || claims.Username != "alice" || claims.Role != "ADMIN" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	want := issued + 3600
	if claims.Exp < want-2 || claims.Exp > want+2 {
		t.Fatalf("exp %d not within 2s of issued+3600 (%d)", claims.Exp, want)
	}
}

func TestCodec_TokenIsUnsignedAndClientDecodable(t *testing.T) {
	c := NewCodec()
	raw, err := c.Mint("7", "bob", "CLIENT")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	// A client must be able to read the claims without any key: the payload
	// segment is plain base64url JSON and the signature segment is empty.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 || parts[2] != "" {
		t.Fatalf("expected unsigned token, got %d parts (sig %q)", len(parts), parts[len(parts)-1])
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("payload not base64url: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(payload, &m); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if m["username"] != "bob" || m["role"] != "CLIENT" {
		t.Fatalf("unexpected payload: %v", m)
	}
}

func TestCodec_Decode_Expired(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	minter := NewCodecAt(func() time.Time { return past })

	raw, err := minter.Mint("1", "carol", "AGENT")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := NewCodec().Decode(raw); err != ErrExpired {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestCodec_Decode_Malformed(t *testing.T) {
	c := NewCodec()
	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := c.Decode(raw); err != ErrMalformed {
			t.Fatalf("decode(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}
