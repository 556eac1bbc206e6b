// Package avatar builds deterministic avatar URLs served by an
// external generation service. No image data is stored locally.
package avatar

import (
	"fmt"
	"net/url"
)

const defaultBaseURL = "https://api.dicebear.com/7.x/identicon/svg"

// Builder produces per-user avatar URLs seeded by the display handle,
// so the same name+suffix always renders the same image.
type Builder struct {
	baseURL string
}

func New(baseURL string) *Builder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Builder{baseURL: baseURL}
}

// URL returns the avatar location for a name and identifier suffix.
func (b *Builder) URL(name, identifier string) string {
	seed := fmt.Sprintf("%s-%s", name, identifier)
	return fmt.Sprintf("%s?seed=%s", b.baseURL, url.QueryEscape(seed))
}
