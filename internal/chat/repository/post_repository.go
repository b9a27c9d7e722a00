package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"goquote/internal/dbmysql"
)

type PostRepository interface {
	Save(ctx context.Context, post *dbmysql.Post) error
	FetchHistory(ctx context.Context, channelID string, limit int) ([]*dbmysql.Post, error)
	ByID(ctx context.Context, ids ...string) ([]*dbmysql.Post, error)
	FilesForPosts(ctx context.Context, postIDs []string) ([]*dbmysql.PostFile, error)
	SaveFile(ctx context.Context, file *dbmysql.PostFile) error
	UsersByID(ctx context.Context, ids []string) ([]*dbmysql.User, error)
	ChannelType(ctx context.Context, channelID string) (string, error)
}

type postRepo struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepo{db: db}
}

func (r *postRepo) Save(ctx context.Context, post *dbmysql.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// FetchHistory returns the posts of channelID oldest first. limit <= 0 means
// no limit.
func (r *postRepo) FetchHistory(ctx context.Context, channelID string, limit int) ([]*dbmysql.Post, error) {
	query := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []*dbmysql.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return posts, nil
}

func (r *postRepo) ByID(ctx context.Context, ids ...string) ([]*dbmysql.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []*dbmysql.Post
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch posts: %w", err)
	}
	return posts, nil
}

func (r *postRepo) FilesForPosts(ctx context.Context, postIDs []string) ([]*dbmysql.PostFile, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var files []*dbmysql.PostFile
	err := r.db.WithContext(ctx).
		Where("post_id IN ?", postIDs).
		Order("position ASC").
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch files: %w", err)
	}
	return files, nil
}

func (r *postRepo) SaveFile(ctx context.Context, file *dbmysql.PostFile) error {
	if err := r.db.WithContext(ctx).Create(file).Error; err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func (r *postRepo) UsersByID(ctx context.Context, ids []string) ([]*dbmysql.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []*dbmysql.User
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}

// ChannelType reports the type of channelID; unknown channels are open.
func (r *postRepo) ChannelType(ctx context.Context, channelID string) (string, error) {
	var channel dbmysql.Channel
	err := r.db.WithContext(ctx).Where("id = ?", channelID).Take(&channel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dbmysql.ChannelTypeOpen, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch channel: %w", err)
	}
	if channel.Type == "" {
		return dbmysql.ChannelTypeOpen, nil
	}
	return channel.Type, nil
}
