package models

import "strings"

const (
	TMDBImageBase = "https://image.tmdb.org/t/p"

	ImageSizeSmall    = "w200"
	ImageSizePoster   = "w500"
	ImageSizeLarge    = "w780"
	ImageSizeOriginal = "original"

	youTubeWatchBase = "https://www.youtube.com/watch?v="
	youTubeThumbBase = "https://img.youtube.com/vi/"
)

// Images builds absolute image URLs from relative catalog paths.
type Images struct {
	BaseURL string
}

// DefaultImages points at the public TMDB image host.
var DefaultImages = Images{BaseURL: TMDBImageBase}

// URL joins base, size and path. An empty path means no image and yields "".
func (i Images) URL(size, path string) string {
	if path == "" {
		return ""
	}
	base := strings.TrimRight(i.BaseURL, "/")
	if base == "" {
		base = TMDBImageBase
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + "/" + size + path
}

// Poster returns the list-size poster URL.
func (i Images) Poster(path string) string { return i.URL(ImageSizePoster, path) }

// Backdrop returns the full-resolution backdrop URL.
func (i Images) Backdrop(path string) string { return i.URL(ImageSizeOriginal, path) }

// TrailerURL returns the YouTube watch link for a trailer key.
func TrailerURL(key string) string {
	if key == "" {
		return ""
	}
	return youTubeWatchBase + key
}

// TrailerThumbnailURL returns the YouTube preview image for a trailer key.
func TrailerThumbnailURL(key string) string {
	if key == "" {
		return ""
	}
	return youTubeThumbBase + key + "/0.jpg"
}
