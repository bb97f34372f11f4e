package ports

import "context"

// UploadResult identifies a stored image on the media host.
type UploadResult struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Format    string `json:"format,omitempty"`
	Bytes     int64  `json:"bytes,omitempty"`
}

// MediaStore is the third-party image host (upload and delete only; the
// host's internals are out of scope).
type MediaStore interface {
	Upload(ctx context.Context, fileName string, data []byte, folder string) (*UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// MediaService exposes image upload/delete to the transport layer.
type MediaService interface {
	Upload(ctx context.Context, actor Actor, fileName string, data []byte) (*UploadResult, error)
	Delete(ctx context.Context, actor Actor, publicID string) error
}
