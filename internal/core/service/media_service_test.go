package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

type stubMediaStore struct {
	folders   []string
	destroyed []string
}

func (s *stubMediaStore) Upload(_ context.Context, fileName string, _ []byte, folder string) (*ports.UploadResult, error) {
	s.folders = append(s.folders, folder)
	return &ports.UploadResult{PublicID: folder + "/" + fileName, SecureURL: "https://cdn/" + fileName}, nil
}

func (s *stubMediaStore) Destroy(_ context.Context, publicID string) error {
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

func TestMediaUpload_FolderScoping(t *testing.T) {
	store := &stubMediaStore{}
	svc := NewMediaService(store, "foodbao", zerolog.Nop())

	if _, err := svc.Upload(context.Background(), adminActor, "logo.png", []byte("img")); err != nil {
		t.Fatalf("staff upload: %v", err)
	}
	if _, err := svc.Upload(context.Background(), clientActor, "dish.png", []byte("img")); err != nil {
		t.Fatalf("client upload: %v", err)
	}

	if store.folders[0] != "foodbao" {
		t.Fatalf("staff uploads go to the root folder, got %q", store.folders[0])
	}
	if store.folders[1] != "foodbao/c1" {
		t.Fatalf("client uploads go to a per-client subfolder, got %q", store.folders[1])
	}
}

func TestMediaUpload_RejectsEmptyAndOversized(t *testing.T) {
	svc := NewMediaService(&stubMediaStore{}, "foodbao", zerolog.Nop())

	if _, err := svc.Upload(context.Background(), adminActor, "x.png", nil); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for empty upload, got %v", err)
	}
	big := make([]byte, maxUploadBytes+1)
	if _, err := svc.Upload(context.Background(), adminActor, "x.png", big); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for oversized upload, got %v", err)
	}
}

func TestMediaDelete(t *testing.T) {
	store := &stubMediaStore{}
	svc := NewMediaService(store, "foodbao", zerolog.Nop())

	if err := svc.Delete(context.Background(), adminActor, ""); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload for empty id, got %v", err)
	}
	if err := svc.Delete(context.Background(), adminActor, "foodbao/logo"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.destroyed) != 1 || store.destroyed[0] != "foodbao/logo" {
		t.Fatalf("unexpected destroy calls: %v", store.destroyed)
	}
}
