package seo

import "strings"

// Placeholder paths used when a project carries no hero media at all.
const (
	projectImageDir    = "/images/projects/"
	genericPlaceholder = "/images/placeholder.jpg"
)

// PreviewImage resolves the preview image for a project, in strict fallback
// order: hero video thumbnail, first hero image, per-slug placeholder path,
// generic placeholder. Evaluated once per entity.
func PreviewImage(videoID string, images []string, publicSlug string) string {
	if videoID != "" {
		return "https://img.youtube.com/vi/" + videoID + "/maxresdefault.jpg"
	}
	if len(images) > 0 && images[0] != "" {
		return images[0]
	}
	if publicSlug != "" {
		return projectImageDir + publicSlug + ".jpg"
	}
	return genericPlaceholder
}

// AbsoluteURL normalizes an image or page URL for use in meta tags: relative
// paths are prefixed with the site origin, absolute URLs pass through.
func AbsoluteURL(origin, url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return origin + url
}
