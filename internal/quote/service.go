package quote

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/logger"
	"goquote/internal/metrics"
)

var ErrPostNotFound = errors.New("post not found")

// Service renders quotes from the post cache and manages pending quotes.
type Service struct {
	posts   common.PostLookup
	files   common.FileLookup
	users   common.UserLookup
	bridge  *Bridge
	log     *zap.Logger
	metrics *metrics.QuoteMetrics
}

func NewService(
	posts common.PostLookup,
	files common.FileLookup,
	users common.UserLookup,
	bridge *Bridge,
	log *zap.Logger,
	m *metrics.QuoteMetrics,
) *Service {
	return &Service{
		posts:   posts,
		files:   files,
		users:   users,
		bridge:  bridge,
		log:     logger.OrNop(log),
		metrics: m,
	}
}

func (s *Service) Bridge() *Bridge {
	return s.bridge
}

// QuotePost snapshots postID as the pending quote of channelID.
func (s *Service) QuotePost(channelID, channelType, postID string) (*common.QuotedReference, error) {
	post, ok := s.posts.Post(postID)
	if !ok || post == nil {
		return nil, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}

	ref := common.QuotedReference{
		PostID:      post.ID,
		Message:     post.Message,
		ChannelID:   channelID,
		UserID:      post.UserID,
		ChannelType: channelType,
	}
	if err := s.bridge.Set(channelID, ref); err != nil {
		return nil, err
	}

	s.log.Info("quote_selected",
		zap.String("channel_id", channelID),
		zap.String("post_id", post.ID))
	return &ref, nil
}

// Preview is the composer rendering of channelID's pending quote.
func (s *Service) Preview(channelID, currentUserID string) (*View, bool) {
	ref, ok := s.bridge.Get(channelID)
	if !ok {
		return nil, false
	}
	return s.PreviewOf(channelID, ref, currentUserID), true
}

// PreviewOf renders ref without reading the slot. The live post wins over
// the snapshot when it is loaded; the body is truncated.
func (s *Service) PreviewOf(channelID string, ref *common.QuotedReference, currentUserID string) *View {
	message := ref.Message
	if post, ok := s.posts.Post(ref.PostID); ok && post != nil && post.Message != "" {
		message = post.Message
	}

	return &View{
		PostID:      ref.PostID,
		ChannelID:   channelID,
		Author:      authorLabel(s.users, ref.UserID),
		ShowAuthor:  currentUserID != ref.UserID,
		Message:     TruncateMessage(message, PreviewMaxLength),
		Attachments: SummarizeAttachments(s.filesFor(ref.PostID)),
	}
}

// Display is the in-thread rendering of a quote: the terminal post of the
// chain starting at quotedPostID, with the sender's snapshot as fallback.
func (s *Service) Display(quotedPostID, fallbackMessage, fallbackUserID, currentUserID string) *View {
	res := Resolve(s.posts, quotedPostID)
	s.metrics.ObserveResolution(res.Hops, res.Truncated)
	if res.Truncated {
		s.log.Debug("quote_chain_truncated", zap.String("post_id", quotedPostID), zap.Int("hops", res.Hops))
	}

	view := &View{
		PostID:  quotedPostID,
		Message: fallbackMessage,
	}
	authorID := fallbackUserID

	if terminal := res.Post; terminal != nil {
		view.PostID = terminal.ID
		view.ChannelID = terminal.ChannelID
		if terminal.Message != "" {
			view.Message = terminal.Message
		}
		if terminal.UserID != "" {
			authorID = terminal.UserID
		}
		view.Attachments = SummarizeAttachments(s.filesFor(terminal.ID))
	}

	view.Author = authorLabel(s.users, authorID)
	view.ShowAuthor = currentUserID != authorID
	return view
}

// Dismiss drops the pending quote of channelID.
func (s *Service) Dismiss(channelID string) error {
	return s.bridge.Clear(channelID)
}

func (s *Service) filesFor(postID string) []common.FileInfo {
	if s.files == nil {
		return nil
	}
	return s.files.FilesForPost(postID)
}
