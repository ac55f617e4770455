package storage

import (
	"context"
	"strings"
	"testing"
)

func TestPublicURL(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"https://cdn.gncc.example", "players/avatars/a.png", "https://cdn.gncc.example/players/avatars/a.png"},
		{"https://cdn.gncc.example/", "/players/avatars/a.png", "https://cdn.gncc.example/players/avatars/a.png"},
		{"https://cdn.gncc.example/media", "matches/logos/b.jpg", "https://cdn.gncc.example/media/matches/logos/b.jpg"},
		{"", "k", ""},
		{"https://cdn.gncc.example", "", ""},
	}
	for _, c := range cases {
		if got := publicURL(c.base, c.key); got != c.want {
			t.Errorf("publicURL(%q, %q) = %q, expected %q", c.base, c.key, got, c.want)
		}
	}
}

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey(PrefixPlayerAvatars, "Photo.PNG")
	if !strings.HasPrefix(key, PrefixPlayerAvatars+"/") {
		t.Errorf("Expected key to start with prefix, got: %s", key)
	}
	if !strings.HasSuffix(key, ".png") {
		t.Errorf("Expected lower-cased extension, got: %s", key)
	}

	if k := NewObjectKey(PrefixMatchLogos, "noext"); strings.Contains(k[len(PrefixMatchLogos)+1:], ".") {
		t.Errorf("Expected no extension, got: %s", k)
	}
}

func TestNewCloudflareR2Uploader_RequiresConfig(t *testing.T) {
	if _, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "x"}); err == nil {
		t.Error("Expected error for incomplete configuration")
	}
}
