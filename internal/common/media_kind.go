package common

import "strings"

// MediaKind is the coarse type of an attachment, inferred from its MIME type.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindFile  MediaKind = "file"
)

// String returns the string representation
func (k MediaKind) String() string {
	return string(k)
}

// IsValid checks if the media kind is known
func (k MediaKind) IsValid() bool {
	return k == MediaKindImage || k == MediaKindVideo || k == MediaKindFile
}

// Badge is the glyph shown next to an attachment name.
func (k MediaKind) Badge() string {
	switch k {
	case MediaKindImage:
		return "🖼️"
	case MediaKindVideo:
		return "🎬"
	default:
		return "📄"
	}
}

func DetectMediaKind(mimeType string) MediaKind {
	lowerMimeType := strings.ToLower(strings.TrimSpace(mimeType))
	if strings.HasPrefix(lowerMimeType, "image/") {
		return MediaKindImage
	}
	if strings.HasPrefix(lowerMimeType, "video/") {
		return MediaKindVideo
	}
	return MediaKindFile
}
