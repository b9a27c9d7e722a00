package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidChannelID = errors.New("invalid channel id")
	ErrInvalidReference = errors.New("invalid quoted reference")
)

var idRegex = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

func ValidateChannelID(channelID string) error {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return fmt.Errorf("%w: channel id is required", ErrInvalidChannelID)
	}

	if len(channelID) > 64 {
		return fmt.Errorf("%w: channel id is too long", ErrInvalidChannelID)
	}

	if !idRegex.MatchString(channelID) {
		return fmt.Errorf("%w: channel id can only contain letters, numbers, dashes and underscores", ErrInvalidChannelID)
	}

	return nil
}

// ValidateQuotedReference checks a reference before it is written to the
// slot of channelID.
func ValidateQuotedReference(channelID string, ref QuotedReference) error {
	if err := ValidateChannelID(channelID); err != nil {
		return err
	}

	if strings.TrimSpace(ref.PostID) == "" {
		return fmt.Errorf("%w: post id is required", ErrInvalidReference)
	}

	if ref.ChannelID != "" && ref.ChannelID != channelID {
		return fmt.Errorf("%w: reference belongs to channel %q", ErrInvalidReference, ref.ChannelID)
	}

	return nil
}
