// Package home remembers the last home page a user opened in each team.
package home

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"goquote/internal/common"
	"goquote/internal/logger"
)

const LastVisitedPrefix = "home_last_visited_"

var ErrMissingField = errors.New("user, team and page are required")

type Store struct {
	storage common.SlotStorage
	log     *zap.Logger
}

func NewStore(storage common.SlotStorage, log *zap.Logger) *Store {
	return &Store{storage: storage, log: logger.OrNop(log)}
}

func Key(userID, teamName string) string {
	return LastVisitedPrefix + userID + "_" + teamName
}

// LastVisited returns the page stored for userID in teamName. found is false
// when nothing was stored.
func (s *Store) LastVisited(userID, teamName string) (string, bool, error) {
	if userID == "" || teamName == "" {
		return "", false, ErrMissingField
	}
	page, found, err := s.storage.Get(Key(userID, teamName))
	if err != nil {
		return "", false, fmt.Errorf("failed to read last visited page: %w", err)
	}
	return page, found, nil
}

func (s *Store) SetLastVisited(userID, teamName, page string) error {
	if userID == "" || teamName == "" || page == "" {
		return ErrMissingField
	}
	if err := s.storage.Set(Key(userID, teamName), page); err != nil {
		return fmt.Errorf("failed to store last visited page: %w", err)
	}
	s.log.Debug("home_last_visited_set", zap.String("user_id", userID), zap.String("team", teamName))
	return nil
}
