package dbmysql

import (
	"time"

	"goquote/internal/common"
)

type Post struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	ChannelID    string    `gorm:"index:idx_posts_channel_created,priority:1;size:64;not null" json:"channel_id"`
	UserID       string    `gorm:"index;size:36;not null" json:"user_id"`
	Message      string    `gorm:"type:text" json:"message"`
	QuotedPostID string    `gorm:"index;size:36" json:"quoted_post_id,omitempty"`
	CreatedAt    time.Time `gorm:"index:idx_posts_channel_created,priority:2" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) ToCommon() *common.Post {
	return &common.Post{
		ID:           p.ID,
		ChannelID:    p.ChannelID,
		UserID:       p.UserID,
		Message:      p.Message,
		QuotedPostID: p.QuotedPostID,
		CreatedAt:    p.CreatedAt,
	}
}

func PostFromCommon(p *common.Post) *Post {
	return &Post{
		ID:           p.ID,
		ChannelID:    p.ChannelID,
		UserID:       p.UserID,
		Message:      p.Message,
		QuotedPostID: p.QuotedPostID,
		CreatedAt:    p.CreatedAt,
	}
}
