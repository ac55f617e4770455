package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

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

// File is an attachment submitted with a form.
type File struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

const (
	PrefixMatchLogos    = "matches/logos"
	PrefixPlayerAvatars = "players/avatars"
)

// NewObjectKey builds "<prefix>/<uuid><ext>" keeping only a short alphanumeric extension.
func NewObjectKey(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if len(ext) > 6 || strings.ContainsAny(ext, "/\\ ") {
		ext = ""
	}
	return prefix + "/" + uuid.NewString() + ext
}
