package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/examhall/examhall-backend/internal/config"
	"github.com/rs/zerolog"
)

func testMediaService(baseURL string) *MediaService {
	cfg := &config.Config{
		ImgBBAPIKey:    "test-key",
		ImgBBBaseURL:   baseURL,
		MaxUploadBytes: 1024,
		UploadTimeout:  5 * time.Second,
	}
	return NewMediaService(cfg, zerolog.Nop())
}

func TestUploadSuccess(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0xe0}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1/upload" {
			t.Errorf("path = %s, want /1/upload", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("content type = %s", got)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("key") != "test-key" {
			t.Errorf("key = %q", r.PostForm.Get("key"))
		}
		decoded, err := base64.StdEncoding.DecodeString(r.PostForm.Get("image"))
		if err != nil {
			t.Fatalf("image field is not base64: %v", err)
		}
		if string(decoded) != string(image) {
			t.Errorf("decoded image mismatch")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"status":  200,
			"data":    map[string]string{"url": "https://i.ibb.co/abc/photo.jpg"},
		})
	}))
	defer srv.Close()

	svc := testMediaService(srv.URL)
	url, err := svc.Upload(context.Background(), image, "image/jpeg")
	if err != nil {
		t.Fatalf("Upload() = %v", err)
	}
	if url != "https://i.ibb.co/abc/photo.jpg" {
		t.Errorf("url = %q", url)
	}
}

func TestUploadHostFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "status": 400})
	}))
	defer srv.Close()

	svc := testMediaService(srv.URL)
	if _, err := svc.Upload(context.Background(), []byte{1}, "image/png"); !errors.Is(err, ErrUploadFailed) {
		t.Errorf("Upload() = %v, want ErrUploadFailed", err)
	}
}

func TestUploadSuccessWithoutURL(t *testing.T) {
	// A 200 with no URL is still a failure; the caller must never record an
	// empty image answer.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "status": 200})
	}))
	defer srv.Close()

	svc := testMediaService(srv.URL)
	if _, err := svc.Upload(context.Background(), []byte{1}, "image/png"); !errors.Is(err, ErrUploadFailed) {
		t.Errorf("Upload() = %v, want ErrUploadFailed", err)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	svc := testMediaService("http://unused.invalid")
	if _, err := svc.Upload(context.Background(), []byte{1}, "application/pdf"); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Upload() = %v, want ErrUnsupportedFileType", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := testMediaService("http://unused.invalid")
	big := make([]byte, 2048)
	if _, err := svc.Upload(context.Background(), big, "image/jpeg"); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Upload() = %v, want ErrFileTooLarge", err)
	}
}
