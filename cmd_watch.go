package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	xlog "github.com/twitchylinux/twlconf/internal/log"
	"github.com/twitchylinux/twlconf/install"
)

const watchDebounce = 500 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload a configuration whenever the frontend rewrites it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchConfig(ctx, configPath, xlog.WithComponent("watch"), func(conf install.Configuration) {
				fmt.Fprintln(cmd.OutOrStdout(), summarize(conf))
			})
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration document")
	cmd.MarkFlagRequired("config")
	return cmd
}

// watchConfig calls onLoad with the configuration at path once at start and
// again after every change, until ctx is done.
func watchConfig(ctx context.Context, path string, logger zerolog.Logger, onLoad func(install.Configuration)) error {
	path = filepath.Clean(path)
	load := func() {
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Warn().Err(err).Str("event", "config.read_failed").Str("path", path).Msg("reading config")
			return
		}
		onLoad(install.Load(logger, b))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// The frontend replaces the file by rename, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch config dir: %w", err)
	}
	logger.Info().Str("event", "config.watcher_started").Str("path", path).Msg("watching config file for changes")

	load()

	reload := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("event", "config.file_changed").Str("op", event.Op.String()).Msg("config file changed")
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})
		case <-reload:
			load()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Str("event", "config.watcher_error").Msg("file watcher error")
		}
	}
}

func summarize(conf install.Configuration) string {
	sections := []install.Value{
		conf.Bootloader, conf.Locale, conf.Networking, conf.Users, conf.RootPass,
		conf.Desktop, conf.Theme, conf.DisplayManager, conf.Browser, conf.ExtraPackages,
		conf.Kernel, conf.Snapper, conf.Zramd, conf.Hardened, conf.Flatpak,
		conf.Params, conf.Terminal,
	}
	set := 0
	for _, s := range sections {
		if !s.IsNull() {
			set++
		}
	}
	device := conf.Partition.Device
	if device == "" {
		device = "(none)"
	}
	return fmt.Sprintf("device=%s mode=%q sections=%d/%d", device, conf.Partition.Mode, set, len(sections))
}

func init() {
	rootCmd.AddCommand(newWatchCmd())
}
