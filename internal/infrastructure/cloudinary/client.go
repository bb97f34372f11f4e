// Package cloudinary implements the documented upload/destroy contract of
// the Cloudinary REST API: multipart upload with an SHA-1 request signature
// over the sorted parameters plus the API secret.
package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodbao/admin-api/internal/core/domain"
	"github.com/foodbao/admin-api/internal/core/ports"
)

const (
	baseURL        = "https://api.cloudinary.com/v1_1"
	defaultTimeout = 30 * time.Second
)

// Config holds the media-host credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

type Client struct {
	cfg     Config
	missing []string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient never fails: missing credentials are reported per call as a
// ConfigurationError so the service can boot without media configured.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	var missing []string
	if cfg.CloudName == "" {
		missing = append(missing, "CLOUDINARY_CLOUD_NAME")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "CLOUDINARY_API_KEY")
	}
	if cfg.APISecret == "" {
		missing = append(missing, "CLOUDINARY_API_SECRET")
	}
	return &Client{cfg: cfg, missing: missing, http: &http.Client{Timeout: defaultTimeout}, log: log}
}

func (c *Client) configured() error {
	if len(c.missing) > 0 {
		return &domain.ConfigurationError{Missing: c.missing}
	}
	return nil
}

// Upload sends the image bytes as a signed multipart POST.
func (c *Client) Upload(ctx context.Context, fileName string, data []byte, folder string) (*ports.UploadResult, error) {
	if err := c.configured(); err != nil {
		return nil, err
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{"timestamp": timestamp}
	if folder != "" {
		params["folder"] = folder
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	_ = w.WriteField("api_key", c.cfg.APIKey)
	_ = w.WriteField("signature", c.sign(params))

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: build form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("cloudinary: write file part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("cloudinary: close form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", baseURL, c.cfg.CloudName)
	var result struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
		Format    string `json:"format"`
		Bytes     int64  `json:"bytes"`
	}
	if err := c.post(ctx, endpoint, w.FormDataContentType(), &body, &result); err != nil {
		return nil, err
	}

	c.log.Info().Str("public_id", result.PublicID).Int64("bytes", result.Bytes).Msg("image uploaded")
	return &ports.UploadResult{
		PublicID:  result.PublicID,
		SecureURL: result.SecureURL,
		Format:    result.Format,
		Bytes:     result.Bytes,
	}, nil
}

// Destroy removes an image by its public ID.
func (c *Client) Destroy(ctx context.Context, publicID string) error {
	if err := c.configured(); err != nil {
		return err
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := map[string]string{
		"public_id": publicID,
		"timestamp": timestamp,
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range params {
		_ = w.WriteField(k, v)
	}
	_ = w.WriteField("api_key", c.cfg.APIKey)
	_ = w.WriteField("signature", c.sign(params))
	if err := w.Close(); err != nil {
		return fmt.Errorf("cloudinary: close form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/destroy", baseURL, c.cfg.CloudName)
	var result struct {
		Result string `json:"result"`
	}
	if err := c.post(ctx, endpoint, w.FormDataContentType(), &body, &result); err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return &domain.UpstreamError{StatusCode: http.StatusOK, Message: "destroy returned " + result.Result}
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("cloudinary: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.UpstreamError{StatusCode: 0, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "unreadable response body"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: mediaMessage(payload)}
	}
	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return &domain.UpstreamError{StatusCode: resp.StatusCode, Message: "undecodable response body"}
		}
	}
	return nil
}

// sign builds the request signature: SHA-1 hex of the sorted key=value
// pairs joined by '&', followed by the API secret.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + c.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func mediaMessage(payload []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}
	if len(payload) > 200 {
		payload = payload[:200]
	}
	return string(payload)
}
