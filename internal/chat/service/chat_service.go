package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"goquote/internal/chat/cache"
	"goquote/internal/chat/repository"
	"goquote/internal/common"
	"goquote/internal/dbmongo"
	"goquote/internal/dbmysql"
	"goquote/internal/logger"
	"goquote/internal/quote"
)

// HistoryLimit caps the posts LoadChannel reads per channel.
const HistoryLimit = 200

var (
	ErrEmptyChannel  = errors.New("channel ID cannot be empty")
	ErrEmptySender   = errors.New("sender ID cannot be empty")
	ErrEmptyContent  = errors.New("message content cannot be empty")
	ErrEmptyFileName = errors.New("file name cannot be empty")
)

// AttachmentStore keeps attachment bytes.
type AttachmentStore interface {
	Upload(ctx context.Context, postID, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.Attachment, error)
	Download(ctx context.Context, fileID string) (io.ReadCloser, *dbmongo.Attachment, error)
	Delete(ctx context.Context, fileID string) error
}

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	LoadChannel(ctx context.Context, channelID string) ([]*common.Post, error)
	SendReply(ctx context.Context, channelID, senderID, content string) (*common.Post, error)
	AttachFile(ctx context.Context, postID, name, mimeType, uploaderID string, content io.Reader) (*common.FileInfo, error)
	ChannelType(ctx context.Context, channelID string) (string, error)
}

type chatService struct {
	repo        repository.PostRepository
	attachments AttachmentStore
	cache       *cache.PostCache
	bridge      *quote.Bridge
	log         *zap.Logger
	now         func() time.Time
	newID       func() string
}

// Constructor used in DI/wire
func NewChatService(
	repo repository.PostRepository,
	attachments AttachmentStore,
	postCache *cache.PostCache,
	bridge *quote.Bridge,
	log *zap.Logger,
) ChatService {
	return &chatService{
		repo:        repo,
		attachments: attachments,
		cache:       postCache,
		bridge:      bridge,
		log:         logger.OrNop(log),
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.New().String() },
	}
}

// LoadChannel reads the channel history into the cache together with the
// quoted posts, their files and authors. A history post's quote is displayed
// by walking up to quote.MaxQuoteHops from the post it quotes, so chains are
// loaded MaxQuoteHops+1 deep.
func (s *chatService) LoadChannel(ctx context.Context, channelID string) ([]*common.Post, error) {
	if channelID == "" {
		return nil, ErrEmptyChannel
	}

	rows, err := s.repo.FetchHistory(ctx, channelID, HistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]*common.Post, 0, len(rows))
	loaded := make([]*common.Post, 0, len(rows))
	for _, row := range rows {
		p := row.ToCommon()
		history = append(history, p)
		loaded = append(loaded, p)
	}
	s.cache.Put(history...)

	frontier := s.missingQuoted(history)
	for depth := 0; depth <= quote.MaxQuoteHops && len(frontier) > 0; depth++ {
		quotedRows, err := s.repo.ByID(ctx, frontier...)
		if err != nil {
			return nil, err
		}
		fetched := make([]*common.Post, 0, len(quotedRows))
		for _, row := range quotedRows {
			fetched = append(fetched, row.ToCommon())
		}
		s.cache.Put(fetched...)
		loaded = append(loaded, fetched...)
		frontier = s.missingQuoted(fetched)
	}

	if err := s.loadFiles(ctx, loaded); err != nil {
		return nil, err
	}
	if err := s.loadAuthors(ctx, loaded); err != nil {
		return nil, err
	}

	s.log.Debug("channel_loaded",
		zap.String("channel_id", channelID),
		zap.Int("history", len(history)),
		zap.Int("loaded", len(loaded)))
	return history, nil
}

func (s *chatService) missingQuoted(posts []*common.Post) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range posts {
		id := p.QuotedPostID
		if id == "" || s.cache.HasPost(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (s *chatService) loadFiles(ctx context.Context, posts []*common.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	rows, err := s.repo.FilesForPosts(ctx, ids)
	if err != nil {
		return err
	}
	byPost := make(map[string][]common.FileInfo, len(ids))
	for _, row := range rows {
		byPost[row.PostID] = append(byPost[row.PostID], row.ToCommon())
	}
	for _, id := range ids {
		s.cache.PutFiles(id, byPost[id])
	}
	return nil
}

func (s *chatService) loadAuthors(ctx context.Context, posts []*common.Post) error {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range posts {
		if p.UserID == "" || s.cache.HasUser(p.UserID) {
			continue
		}
		if _, dup := seen[p.UserID]; dup {
			continue
		}
		seen[p.UserID] = struct{}{}
		ids = append(ids, p.UserID)
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := s.repo.UsersByID(ctx, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		s.cache.PutUser(row.ToCommon())
	}
	return nil
}

// SendReply saves a post in channelID. A pending quote of the channel is
// attached to it and cleared once the post is stored, unless another quote
// replaced it in the meantime.
func (s *chatService) SendReply(ctx context.Context, channelID, senderID, content string) (*common.Post, error) {
	if channelID == "" {
		return nil, ErrEmptyChannel
	}
	if senderID == "" {
		return nil, ErrEmptySender
	}
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &common.Post{
		ID:        s.newID(),
		ChannelID: channelID,
		UserID:    senderID,
		Message:   content,
		CreatedAt: s.now(),
	}

	ref, quoted := s.bridge.Get(channelID)
	if quoted {
		post.QuotedPostID = ref.PostID
	}

	if err := s.repo.Save(ctx, dbmysql.PostFromCommon(post)); err != nil {
		return nil, err
	}
	s.cache.Put(post)

	if quoted {
		cleared, err := s.bridge.ClearIf(channelID, ref.PostID)
		switch {
		case err != nil:
			s.log.Warn("quote_clear_failed", zap.String("channel_id", channelID), zap.Error(err))
		case !cleared:
			s.log.Debug("quote_replaced_during_send",
				zap.String("channel_id", channelID),
				zap.String("quoted_post_id", ref.PostID))
		}
	}

	s.log.Info("reply_sent",
		zap.String("channel_id", channelID),
		zap.String("post_id", post.ID),
		zap.String("quoted_post_id", post.QuotedPostID))
	return post, nil
}

// AttachFile stores content in GridFS and records it as the next file of
// postID.
func (s *chatService) AttachFile(ctx context.Context, postID, name, mimeType, uploaderID string, content io.Reader) (*common.FileInfo, error) {
	if postID == "" {
		return nil, fmt.Errorf("%w: %s", quote.ErrPostNotFound, postID)
	}
	if name == "" {
		return nil, ErrEmptyFileName
	}

	attachment, err := s.attachments.Upload(ctx, postID, name, mimeType, uploaderID, content)
	if err != nil {
		return nil, err
	}

	existing := s.cache.FilesForPost(postID)
	row := &dbmysql.PostFile{
		ID:         attachment.ID,
		PostID:     postID,
		Name:       name,
		MimeType:   mimeType,
		Size:       attachment.Size,
		Position:   len(existing),
		UploadedBy: uploaderID,
	}
	if err := s.repo.SaveFile(ctx, row); err != nil {
		if delErr := s.attachments.Delete(ctx, attachment.ID); delErr != nil {
			s.log.Warn("orphan_attachment", zap.String("file_id", attachment.ID), zap.Error(delErr))
		}
		return nil, err
	}

	info := row.ToCommon()
	s.cache.PutFiles(postID, append(existing, info))
	return &info, nil
}

func (s *chatService) ChannelType(ctx context.Context, channelID string) (string, error) {
	if channelID == "" {
		return "", ErrEmptyChannel
	}
	return s.repo.ChannelType(ctx, channelID)
}
