package blog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"

	"github.com/ayush/vibrant-blog/internal/httpjson"
	"github.com/ayush/vibrant-blog/internal/logger"
	"github.com/ayush/vibrant-blog/internal/store"
)

// MaxImageSize is the largest accepted upload, 5 MiB.
const MaxImageSize = 5 << 20

// ImagePathPrefix is the URL prefix uploaded images are served under.
const ImagePathPrefix = "/uploads/"

const maxNameAttempts = 5

var (
	ErrNotImage      = errors.New("upload is not a jpeg, png or gif image")
	ErrImageTooLarge = errors.New("upload exceeds the image size limit")
)

var (
	imageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}
	imageTypes      = map[string]bool{"image/jpeg": true, "image/png": true, "image/gif": true}
)

// ImageStore persists uploaded image bytes under a flat name.
type ImageStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
	Remove(ctx context.Context, name string) error
}

// Uploader validates image uploads and stores them in an ImageStore.
type Uploader struct {
	images ImageStore
	now    func() time.Time
}

func NewUploader(images ImageStore) *Uploader {
	return &Uploader{images: images, now: time.Now}
}

// Check validates size, extension, declared MIME type and sniffed content
// of fh and returns the sniffed content type.
func (u *Uploader) Check(fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	if !imageExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return "", ErrNotImage
	}
	declared, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil || !imageTypes[declared] {
		return "", ErrNotImage
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	sniffed, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if !imageTypes[sniffed.String()] {
		return "", ErrNotImage
	}
	return sniffed.String(), nil
}

// Save stores fh under a name built from the upload time and its extension
// and returns the path the image is served at.
func (u *Uploader) Save(ctx context.Context, fh *multipart.FileHeader, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	base := u.now().UnixNano()

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := strconv.FormatInt(base+int64(attempt), 10) + ext

		f, err := fh.Open()
		if err != nil {
			return "", fmt.Errorf("open upload: %w", err)
		}
		err = u.images.Save(ctx, name, f, fh.Size, contentType)
		f.Close()

		if errors.Is(err, store.ErrDuplicate) {
			continue
		}
		if err != nil {
			return "", err
		}
		return ImagePathPrefix + name, nil
	}
	return "", fmt.Errorf("no free image name after %d attempts", maxNameAttempts)
}

// Remove deletes the image served at path. Paths outside ImagePathPrefix are ignored.
func (u *Uploader) Remove(ctx context.Context, path string) error {
	name, ok := strings.CutPrefix(path, ImagePathPrefix)
	if !ok || name == "" {
		return nil
	}
	return u.images.Remove(ctx, name)
}

// Serve streams GET /uploads/{name}.
func (u *Uploader) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	rc, contentType, err := u.images.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpjson.Message(w, http.StatusNotFound, "Image not found")
			return
		}
		logger.Log.Errorw("failed to open image", "name", name, "err", err)
		httpjson.Message(w, http.StatusInternalServerError, "Failed to load image")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, rc); err != nil {
		logger.Log.Warnw("image stream interrupted", "name", name, "err", err)
	}
}
