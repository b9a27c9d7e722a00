package dbmysql

import (
	"time"

	"goquote/internal/common"
)

// PostFile references an attachment blob kept in GridFS.
type PostFile struct {
	ID         string    `gorm:"primaryKey;size:24" json:"id"` // MongoDB ObjectID
	PostID     string    `gorm:"index;size:36;not null" json:"post_id"`
	Name       string    `gorm:"size:255" json:"name"`
	MimeType   string    `gorm:"size:100" json:"mime_type"`
	Size       int64     `json:"size"`
	Position   int       `json:"position"`
	UploadedBy string    `gorm:"size:36;index" json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

func (PostFile) TableName() string {
	return "post_files"
}

func (f *PostFile) ToCommon() common.FileInfo {
	return common.FileInfo{
		ID:       f.ID,
		PostID:   f.PostID,
		Name:     f.Name,
		MimeType: f.MimeType,
		Size:     f.Size,
		Position: f.Position,
	}
}
