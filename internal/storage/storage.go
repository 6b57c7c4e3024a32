package storage // package storage abstracts the object store holding uploaded images

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/courtside/racketdb/internal/config"
)

// Client is the object-store surface the upload handler needs: write an
// object, delete it again.  Two implementations exist, an S3-compatible
// one for production and a filesystem one for development.
type Client interface {
	// Put stores data under key with the given content type and returns the
	// public URL the object is served from.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes the object stored under key.  Deleting a missing
	// object is not an error.
	Delete(ctx context.Context, key string) error
}

// ObjectName builds the storage key for an upload:
// uploads/{kind}/{userID}/{year}/{month}/{uuid}.{ext}.  Spreading objects
// over year/month directories keeps any single prefix from growing without
// bound, and the UUID removes filename collisions between users.
func ObjectName(kind string, userID uint64, ext string) string {
	now := time.Now().UTC()
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("uploads/%s/%d/%d/%02d/%s.%s",
		kind, userID, now.Year(), int(now.Month()), uuid.NewString(), ext)
}

// New picks the backend named by the configuration.  Driver "s3" talks to
// any S3-compatible endpoint; anything else falls back to the local
// filesystem driver.
func New(cfg config.StorageConfig) (Client, error) {
	if cfg.Driver == "s3" {
		return newS3Client(cfg)
	}
	return newLocalClient(cfg)
}
