package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Prograto/BookReviewsPlatform/internal/storage"
)

const (
	// coverPrefix namespaces offloaded cover objects inside the bucket. An
	// image value starting with it is treated as an object key on reads.
	coverPrefix = "covers/"
	// coverURLTTL bounds how long a presigned cover URL stays valid.
	coverURLTTL = 15 * time.Minute
)

var coverExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// parseDataURL splits a base64 data URL (data:image/png;base64,...) into
// its content type and decoded bytes. ok is false for anything else,
// including plain http(s) image URLs, which are stored inline as-is.
func parseDataURL(s string) (contentType string, data []byte, ok bool) {
	rest, found := strings.CutPrefix(s, "data:")
	if !found {
		return "", nil, false
	}
	contentType, payload, found := strings.Cut(rest, ";base64,")
	if !found || contentType == "" {
		return "", nil, false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, false
	}
	return contentType, data, true
}

// offloadCover uploads decoded data-URL content and returns the object key
// to store in place of the inline image. The key embeds a fresh UUID so
// replacing a cover never overwrites the old object.
func offloadCover(ctx context.Context, covers storage.Storage, contentType string, data []byte) (string, error) {
	ext, known := coverExtensions[contentType]
	if !known {
		ext = ".bin"
	}
	key := coverPrefix + uuid.New().String() + ext

	_, err := covers.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload cover: %w", err)
	}
	return key, nil
}

// presentCover swaps a stored object key for a presigned download URL.
// Inline values (empty, http URLs, small base64 blobs) pass through.
func presentCover(ctx context.Context, covers storage.Storage, image string) string {
	if covers == nil || !strings.HasPrefix(image, coverPrefix) {
		return image
	}
	url, err := covers.PresignGet(ctx, image, coverURLTTL)
	if err != nil {
		// Serving the key is useless to clients; an empty image is the
		// same outcome as a book created without one.
		return ""
	}
	return url
}
