package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/gncc/cricket-dashboard/models"
	"github.com/gncc/cricket-dashboard/storage"
)

func populateMatchLogoURL(match *models.Match, uploader storage.FileUploader) {
	if match != nil && match.OpponentLogoKey != nil && *match.OpponentLogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*match.OpponentLogoKey)
		if url != "" {
			match.OpponentLogoURL = &url
		}
	}
}

func populatePlayerAvatarURL(player *models.Player, uploader storage.FileUploader) {
	if player != nil && player.AvatarKey != nil && *player.AvatarKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*player.AvatarKey)
		if url != "" {
			player.AvatarURL = &url
		}
	}
}

// uploadImage stores file under prefix and returns its object key.
func uploadImage(ctx context.Context, uploader storage.FileUploader, prefix string, file *storage.File) (string, error) {
	if uploader == nil {
		return "", ErrMediaStorageDisabled
	}
	if !strings.HasPrefix(file.ContentType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image (%s)", ErrValidationFailed, file.Filename, file.ContentType)
	}

	filename := file.Filename
	if path.Ext(filename) == "" {
		if ext, err := GetExtensionFromContentType(file.ContentType); err == nil {
			filename += ext
		}
	}

	key := storage.NewObjectKey(prefix, filename)
	if _, err := uploader.Upload(ctx, key, file.ContentType, file.Reader); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", file.Filename, err)
	}
	return key, nil
}

// removeObject deletes a stored object. Failures are only logged; the row that referenced it is gone already.
func removeObject(ctx context.Context, uploader storage.FileUploader, key string, logger *slog.Logger) {
	if uploader == nil || key == "" {
		return
	}
	if err := uploader.Delete(ctx, key); err != nil {
		logger.WarnContext(ctx, "failed to delete stored object", slog.String("key", key), slog.Any("error", err))
	}
}

func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && parts[0] == "image" && parts[1] != "" {
			// "image/svg+xml" -> ".svg"
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: '%s'", contentType)
	}
}
