package dbmysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"goquote/internal/common"
)

func TestPost_CommonConversion(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &common.Post{
		ID:           "p2",
		ChannelID:    "c1",
		UserID:       "u1",
		Message:      "replying",
		QuotedPostID: "p1",
		CreatedAt:    created,
	}

	row := PostFromCommon(in)
	assert.Equal(t, "p1", row.QuotedPostID)
	assert.Equal(t, in, row.ToCommon())
}

func TestPostFile_ToCommon(t *testing.T) {
	row := &PostFile{ID: "abc", PostID: "p1", Name: "a.png", MimeType: "image/png", Size: 10, Position: 1, UploadedBy: "u1"}
	assert.Equal(t, common.FileInfo{ID: "abc", PostID: "p1", Name: "a.png", MimeType: "image/png", Size: 10, Position: 1}, row.ToCommon())
}

func TestUser_ToCommon(t *testing.T) {
	assert.Equal(t, &common.User{ID: "u1", Username: "alice"}, (&User{UserID: "u1", Handle: "alice"}).ToCommon())
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "posts", Post{}.TableName())
	assert.Equal(t, "post_files", PostFile{}.TableName())
	assert.Equal(t, "users", User{}.TableName())
	assert.Equal(t, "channels", Channel{}.TableName())
	assert.Len(t, Models(), 4)
}
