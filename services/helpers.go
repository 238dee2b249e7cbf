package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnsupportedAvatarType = errors.New("unsupported avatar content type")

func extensionFromContentType(contentType string) (string, error) {
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
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAvatarType, contentType)
	}
}

// parseCompetitionDate parses the stored ISO-8601 start instant. A trailing
// "Z" means UTC; an instant without an offset is treated as UTC as well.
func parseCompetitionDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrCompetitionDateInvalid)
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSuffix(raw, "Z")); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrCompetitionDateInvalid, raw)
}

// formatSeconds renders a second count as a zero-padded HH:MM:SS string.
// Display only: ordering is always done on the numeric value.
func formatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
