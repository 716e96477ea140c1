// Package youtube extracts video ids from the URL shapes editors paste into
// the sheet and builds embed and thumbnail URLs from them.
package youtube

import (
	"regexp"
	"strings"
)

// StockThumbnail is shown when no thumbnail is given and none can be derived.
const StockThumbnail = "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?q=80&w=1470&auto=format&fit=crop"

const idLength = 11

var reVideoID = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// VideoID returns the 11-character video id contained in url.
func VideoID(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}
	m := reVideoID.FindStringSubmatch(url)
	if m == nil || len(m[2]) != idLength {
		return "", false
	}
	return m[2], true
}

// EmbedURL returns an autoplaying embed URL for YouTube links. URLs that are
// already embeds, or that carry no recognizable id, are returned unchanged.
func EmbedURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.Contains(url, "embed/") {
		return url
	}
	if id, ok := VideoID(url); ok {
		return "https://www.youtube.com/embed/" + id + "?autoplay=1"
	}
	return url
}

// Thumbnail returns the provider's max resolution thumbnail for url, or
// StockThumbnail when url has no video id.
func Thumbnail(url string) string {
	if id, ok := VideoID(url); ok {
		return ThumbnailFor(id)
	}
	return StockThumbnail
}

func ThumbnailFor(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
