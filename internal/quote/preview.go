package quote

import (
	"goquote/internal/common"
)

const (
	// PreviewMaxLength is the composer preview body limit, in runes.
	PreviewMaxLength = 80
	Ellipsis         = "..."
	UnknownUser      = "Unknown User"

	defaultAttachmentName = "attachment"
)

// TruncateMessage cuts message to maxLength runes and appends Ellipsis.
// Messages that fit are returned unchanged.
func TruncateMessage(message string, maxLength int) string {
	runes := []rune(message)
	if len(runes) <= maxLength {
		return message
	}
	return string(runes[:maxLength]) + Ellipsis
}

// AttachmentSummary describes a post's files the way a quote renders them:
// the first file plus a count of the rest.
type AttachmentSummary struct {
	FileID string           `json:"file_id"`
	Name   string           `json:"name"`
	Kind   common.MediaKind `json:"kind"`
	Badge  string           `json:"badge"`
	More   int              `json:"more"`
}

// SummarizeAttachments returns nil for posts without files.
func SummarizeAttachments(files []common.FileInfo) *AttachmentSummary {
	if len(files) == 0 {
		return nil
	}

	first := files[0]
	name := first.Name
	if name == "" {
		name = defaultAttachmentName
	}
	kind := common.DetectMediaKind(first.MimeType)

	return &AttachmentSummary{
		FileID: first.ID,
		Name:   name,
		Kind:   kind,
		Badge:  kind.Badge(),
		More:   len(files) - 1,
	}
}

// View is what a surface renders for a quote.
type View struct {
	PostID      string             `json:"post_id"`
	ChannelID   string             `json:"channel_id,omitempty"`
	Author      string             `json:"author"`
	ShowAuthor  bool               `json:"show_author"`
	Message     string             `json:"message"`
	Attachments *AttachmentSummary `json:"attachments,omitempty"`
}

func authorLabel(users common.UserLookup, userID string) string {
	if users == nil || userID == "" {
		return UnknownUser
	}
	user, ok := users.User(userID)
	if !ok || user == nil || user.Username == "" {
		return UnknownUser
	}
	return user.Username
}
