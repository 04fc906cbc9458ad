package content

import (
	"fmt"
	"regexp"
)

// ThumbnailQuality selects one of YouTube's static thumbnail renditions.
type ThumbnailQuality string

const (
	QualityDefault ThumbnailQuality = "default"
	QualityMQ      ThumbnailQuality = "mqdefault"
	QualityHQ      ThumbnailQuality = "hqdefault"
	QualitySD      ThumbnailQuality = "sddefault"
	QualityMaxres  ThumbnailQuality = "maxresdefault"
)

var (
	iframeEmbedRe = regexp.MustCompile(`youtube\.com/embed/([a-zA-Z0-9_-]{11})`)
	watchURLRe    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/)([a-zA-Z0-9_-]{11})`)
	bareIDRe      = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
	// Looser pattern used for thumbnail derivation: the original dashboard
	// matched everything up to the next query separator, not an exact id.
	syncWatchRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&]+)`)
)

// ExtractVideoID pulls a YouTube video id out of a watch URL, short URL,
// embed URL, iframe embed snippet, or a bare 11-character id. Returns ""
// when no id can be found.
func ExtractVideoID(input string) string {
	if input == "" {
		return ""
	}
	if m := iframeEmbedRe.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if m := watchURLRe.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if bareIDRe.MatchString(input) {
		return input
	}
	return ""
}

// WatchVideoID extracts a video id from watch/short URLs only, with the loose
// matching the legacy video projection uses. Returns "" when the URL does not
// look like a YouTube link.
func WatchVideoID(url string) string {
	if m := syncWatchRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// EmbedURL builds a player embed URL for the given video id.
func EmbedURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/embed/%s?autoplay=1&modestbranding=1&rel=0&showinfo=0", videoID)
}

// ThumbnailURL builds a static thumbnail URL for the given video id.
func ThumbnailURL(videoID string, quality ThumbnailQuality) string {
	if quality == "" {
		quality = QualityMaxres
	}
	return fmt.Sprintf("https://img.youtube.com/vi/%s/%s.jpg", videoID, quality)
}
