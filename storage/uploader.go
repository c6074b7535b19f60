package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var ErrUnsupportedContentType = errors.New("unsupported image content type")

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PlayerImageKey строит ключ объекта для фото игрока. Метка времени в имени
// гарантирует, что CDN не отдаст старую версию после замены.
func PlayerImageKey(playerID string, contentType string, now time.Time) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
	}
	safeID := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(playerID)
	return path.Join("players", safeID, fmt.Sprintf("%d%s", now.Unix(), ext)), nil
}
