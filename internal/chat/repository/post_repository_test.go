package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"goquote/internal/dbmysql"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

var postColumns = []string{"id", "channel_id", "user_id", "message", "quoted_post_id", "created_at", "updated_at"}

func TestPostRepository_Save(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful save",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `posts`")).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `posts`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewPostRepository(db)
			err := repo.Save(context.Background(), &dbmysql.Post{
				ID:           "p2",
				ChannelID:    "c1",
				UserID:       "u1",
				Message:      "reply",
				QuotedPostID: "p1",
			})

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepository_FetchHistory(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	base := time.Now().Add(-time.Hour)
	rows := sqlmock.NewRows(postColumns).
		AddRow("p1", "c1", "u1", "First", "", base, base).
		AddRow("p2", "c1", "u2", "Second", "p1", base.Add(time.Minute), base.Add(time.Minute))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts` WHERE channel_id = ? ORDER BY created_at ASC")).
		WillReturnRows(rows)

	repo := NewPostRepository(db)
	posts, err := repo.FetchHistory(context.Background(), "c1", 50)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p1", posts[1].QuotedPostID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FetchHistoryError(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts`")).
		WillReturnError(assert.AnError)

	posts, err := NewPostRepository(db).FetchHistory(context.Background(), "c1", 0)
	assert.Error(t, err)
	assert.Nil(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ByID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts` WHERE id IN (?,?)")).
		WithArgs("p1", "p9").
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow("p1", "c1", "u1", "First", "", now, now))

	repo := NewPostRepository(db)
	posts, err := repo.ByID(context.Background(), "p1", "p9")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "First", posts[0].Message)

	none, err := repo.ByID(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, none)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_FilesForPosts(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "post_id", "name", "mime_type", "size", "position", "uploaded_by", "created_at"}).
		AddRow("f1", "p1", "a.png", "image/png", 10, 0, "u1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `post_files` WHERE post_id IN (?)")).
		WithArgs("p1").
		WillReturnRows(rows)

	files, err := NewPostRepository(db).FilesForPosts(context.Background(), []string{"p1"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "image/png", files[0].MimeType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_SaveFile(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `post_files`")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewPostRepository(db).SaveFile(context.Background(), &dbmysql.PostFile{ID: "f1", PostID: "p1"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_UsersByID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"user_id", "handle", "created_at", "updated_at"}).
		AddRow("u1", "alice", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE user_id IN (?)")).
		WithArgs("u1").
		WillReturnRows(rows)

	users, err := NewPostRepository(db).UsersByID(context.Background(), []string{"u1"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Handle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ChannelType(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `channels` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type"}).AddRow("c1", "town-square", "P"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `channels` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type"}))

	repo := NewPostRepository(db)

	kind, err := repo.ChannelType(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "P", kind)

	kind, err = repo.ChannelType(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, dbmysql.ChannelTypeOpen, kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
