package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

// maxUploadBytes caps image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// MediaService fronts the third-party image host.
type MediaService struct {
	store  ports.MediaStore
	folder string
	log    zerolog.Logger
}

func NewMediaService(store ports.MediaStore, folder string, log zerolog.Logger) *MediaService {
	return &MediaService{store: store, folder: folder, log: log}
}

func (s *MediaService) Upload(ctx context.Context, actor ports.Actor, fileName string, data []byte) (*ports.UploadResult, error) {
	if len(data) == 0 || len(data) > maxUploadBytes {
		return nil, domain.ErrInvalidPayload
	}

	// Client uploads land in a per-client subfolder.
	folder := s.folder
	if !domain.IsStaff(actor.Role) && actor.ClientID != "" {
		folder = folder + "/" + actor.ClientID
	}

	result, err := s.store.Upload(ctx, fileName, data, folder)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("public_id", result.PublicID).Msg("media uploaded")
	return result, nil
}

func (s *MediaService) Delete(ctx context.Context, actor ports.Actor, publicID string) error {
	if publicID == "" {
		return domain.ErrInvalidPayload
	}
	if err := s.store.Destroy(ctx, publicID); err != nil {
		return err
	}
	s.log.Info().Str("public_id", publicID).Msg("media deleted")
	return nil
}
