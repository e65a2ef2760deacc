package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/rs/zerolog"
)

// Sentinel errors for media uploads.
var (
	ErrUploadFailed        = errors.New("image upload failed")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Allowed image MIME types.
var allowedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// MediaService uploads images to an ImgBB-compatible host. The payload is
// base64-encoded into a form body; one attempt per call, no retries —
// recovery is always caller-initiated.
type MediaService struct {
	cfg    *config.Config
	client *http.Client
	log    zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, log zerolog.Logger) *MediaService {
	return &MediaService{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.UploadTimeout,
		},
		log: log.With().Str("component", "media_service").Logger(),
	}
}

// uploadResponse mirrors the ImgBB API response shape.
type uploadResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// Upload sends one image to the host and returns its public URL.
func (s *MediaService) Upload(ctx context.Context, image []byte, contentType string) (string, error) {
	if !allowedMIMETypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}
	if int64(len(image)) > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, len(image), s.cfg.MaxUploadBytes)
	}

	form := url.Values{
		"key":   {s.cfg.ImgBBAPIKey},
		"image": {base64.StdEncoding.EncodeToString(image)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.cfg.ImgBBBaseURL+"/1/upload", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Msg("Upload request failed")
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	var body uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUploadFailed, err)
	}

	if resp.StatusCode != http.StatusOK || !body.Success || body.Data.URL == "" {
		s.log.Warn().Int("status", resp.StatusCode).Msg("Upload rejected by host")
		return "", fmt.Errorf("%w: host status %d", ErrUploadFailed, resp.StatusCode)
	}

	return body.Data.URL, nil
}
