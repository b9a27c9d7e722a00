// Package cli implements quotectl, a tool for inspecting the pending-quote
// slots of a file or pebble store.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"goquote/internal/common"
	"goquote/internal/config"
	"goquote/internal/quote"
	"goquote/internal/slotstore"
)

const AppName = "quotectl"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

var errWatchUnsupported = errors.New("backend does not report changes")

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Inspect and edit pending quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().String("backend", slotstore.BackendFile, "slot backend: file or pebble")
	cmd.PersistentFlags().String("path", ".quotes", "directory of the slot store")

	cmd.AddCommand(
		NewGetCmd(),
		NewSetCmd(),
		NewClearCmd(),
		NewKeysCmd(),
		NewWatchCmd(),
	)
	return cmd
}

type session struct {
	storage common.SlotStorage
	bus     *quote.Bus
	bridge  *quote.Bridge
	close   func()
}

func openSession(cmd *cobra.Command) (*session, error) {
	backend, _ := cmd.Flags().GetString("backend")
	path, _ := cmd.Flags().GetString("path")

	storage, cleanup, err := slotstore.Open(config.StorageConfig{Backend: backend, Path: path}, nil)
	if err != nil {
		return nil, err
	}
	bus := quote.NewBus(1, 16, nil, nil)
	return &session{
		storage: storage,
		bus:     bus,
		bridge:  quote.NewBridge(storage, bus, nil, nil),
		close: func() {
			bus.Shutdown()
			cleanup()
		},
	}, nil
}

func printRef(cmd *cobra.Command, ref *common.QuotedReference) error {
	if ref == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "no pending quote")
		return nil
	}
	data, err := json.MarshalIndent(ref, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func NewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <channel>",
		Short: "Print the pending quote of a channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ref, _ := s.bridge.Get(args[0])
			return printRef(cmd, ref)
		},
	}
}

func NewSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <channel> <post>",
		Short: "Store a pending quote for a channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")
			userID, _ := cmd.Flags().GetString("user")
			channelType, _ := cmd.Flags().GetString("type")

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ref := common.QuotedReference{
				PostID:      args[1],
				Message:     message,
				ChannelID:   args[0],
				UserID:      userID,
				ChannelType: channelType,
			}
			if err := s.bridge.Set(args[0], ref); err != nil {
				return err
			}
			return printRef(cmd, &ref)
		},
	}
	cmd.Flags().String("message", "", "quoted message text")
	cmd.Flags().String("user", "", "author of the quoted post")
	cmd.Flags().String("type", "O", "channel type")
	return cmd
}

func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <channel>",
		Short: "Remove the pending quote of a channel and print what it quoted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			ref, ok, err := s.bridge.Consume(args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing to clear in %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s (was quoting %s)\n", args[0], ref.PostID)
			return nil
		},
	}
}

func NewKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List channels with a pending quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			var keys []string
			switch store := s.storage.(type) {
			case *slotstore.File:
				keys, err = store.Keys()
			case *slotstore.Pebble:
				keys, err = store.Keys(quote.QuotedPostPrefix)
			default:
				return fmt.Errorf("backend %T cannot list keys", s.storage)
			}
			if err != nil {
				return err
			}

			var channels []string
			for _, key := range keys {
				if channelID, ok := quote.ChannelIDFromKey(key); ok {
					channels = append(channels, channelID)
				}
			}
			sort.Strings(channels)
			if len(channels) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(channels, "\n"))
			}
			return nil
		},
	}
}

func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <channel>",
		Short: "Print the pending quote of a channel whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if _, ok := s.storage.(common.WatchableStorage); !ok {
				return errWatchUnsupported
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			surface := s.bridge.Observe(args[0], func(ref *common.QuotedReference) {
				_ = printRef(cmd, ref)
			})
			defer surface.Close()

			if err := s.bridge.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}
