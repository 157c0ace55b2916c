package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SocialPlatform identifies the social network a link points at.
type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformOther     SocialPlatform = "other"
)

var platformHosts = map[string]SocialPlatform{
	"twitter.com":   PlatformTwitter,
	"x.com":         PlatformTwitter,
	"facebook.com":  PlatformFacebook,
	"fb.com":        PlatformFacebook,
	"linkedin.com":  PlatformLinkedIn,
	"instagram.com": PlatformInstagram,
	"youtube.com":   PlatformYouTube,
	"youtu.be":      PlatformYouTube,
}

// Valid reports whether the platform is a known one.
func (p SocialPlatform) Valid() bool {
	switch p {
	case PlatformTwitter, PlatformFacebook, PlatformLinkedIn, PlatformInstagram, PlatformYouTube, PlatformOther:
		return true
	}
	return false
}

// DetectPlatform infers the platform from the URL host, falling back to
// "other" for anything unrecognized or unparseable.
func DetectPlatform(rawURL string) SocialPlatform {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return PlatformOther
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if platform, ok := platformHosts[host]; ok {
		return platform
	}
	return PlatformOther
}

// SocialLink is a tenant-owned social media link.
type SocialLink struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	TenantID  uuid.UUID      `json:"tenant_id" db:"tenant_id"`
	URL       string         `json:"url" db:"url"`
	Platform  SocialPlatform `json:"platform" db:"platform"`
	CreatedAt time.Time      `json:"added_at" db:"created_at"`
	UpdatedAt time.Time      `json:"-" db:"updated_at"`
}
