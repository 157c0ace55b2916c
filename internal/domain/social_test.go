package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	cases := map[string]SocialPlatform{
		"https://twitter.com/acme":             PlatformTwitter,
		"https://x.com/acme":                   PlatformTwitter,
		"https://www.twitter.com/acme":         PlatformTwitter,
		"https://facebook.com/acme":            PlatformFacebook,
		"https://fb.com/acme":                  PlatformFacebook,
		"https://www.linkedin.com/company/a":   PlatformLinkedIn,
		"https://instagram.com/acme":           PlatformInstagram,
		"https://youtube.com/@acme":            PlatformYouTube,
		"https://youtu.be/dQw4w9WgXcQ":         PlatformYouTube,
		"https://TWITTER.com/acme":             PlatformTwitter,
		"https://example.com/acme":             PlatformOther,
		"https://nottwitter.com/acme":          PlatformOther,
		"https://twitter.com.evil.example/pwn": PlatformOther,
		"not a url":                            PlatformOther,
		"":                                     PlatformOther,
	}

	for rawURL, want := range cases {
		assert.Equal(t, want, DetectPlatform(rawURL), "url %q", rawURL)
	}
}
