package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/taliesin/internal/audio"
	"github.com/jmylchreest/taliesin/internal/config"
	"github.com/jmylchreest/taliesin/internal/keyboard"
	"github.com/jmylchreest/taliesin/internal/keys"
	"github.com/jmylchreest/taliesin/internal/notify"
	"github.com/jmylchreest/taliesin/internal/trigger"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// options holds the parsed command-line flags.
type options struct {
	verbose  bool
	listKeys bool
	diagnose bool
	raw      config.Raw
}

var logger *slog.Logger

// newRootCmd builds the base command.
func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "taliesin",
		Short: "Play a sound after pressing a key, with an optional delay",
		Long: `taliesin plays a sound file a set time after one of the trigger keys is
pressed. Pressing a trigger key again restarts the countdown once the ignore
duration has passed; pressing a cancel key clears a pending countdown.

Keys are given by name (A, Key1, LControl, F5, Space, ...) and may be
repeated or comma separated. Run with --list-keys to see every name.

Reading the keyboard requires access to /dev/input (the 'input' group).`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
		Args:          noPositionalKeys,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(opts.verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listKeys {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(keys.Names(), "\n"))
				return nil
			}
			if opts.diagnose {
				msg, err := keyboard.Diagnose()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), msg)
				return nil
			}

			cfg, err := config.Load(opts.raw)
			if err != nil {
				return fmt.Errorf("invalid arguments: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&opts.raw.Keys, "keys", "k", nil,
		"Key(s) to trigger sound; repeat or comma-separate for several (-k A -k B, -k A,B)")
	flags.StringVarP(&opts.raw.File, "file", "f", "",
		"Path to sound file (wav, mp3, ogg, flac)")
	flags.StringVarP(&opts.raw.Delay, "delay", "d", "",
		"Delay in milliseconds before playing the sound")
	flags.StringVarP(&opts.raw.IgnoreDuration, "ignore-duration", "i", "",
		"Duration in milliseconds after pressing the key when another press will be ignored (default 0)")
	flags.StringSliceVarP(&opts.raw.CancelKeys, "cancel-keys", "c", nil,
		"Key(s) that can cancel playing the sound; repeat or comma-separate for several")
	flags.StringVar(&opts.raw.Volume, "volume", "",
		fmt.Sprintf("Playback volume 0-100 (default %d)", config.DefaultVolume))
	flags.StringVar(&opts.raw.PollInterval, "poll-interval", "",
		"Sleep between keyboard polls, e.g. 1ms (default: yield only)")
	flags.BoolVar(&opts.raw.DesktopNotify, "notify", false,
		"Send desktop notifications when the sound plays or fails")
	flags.StringVar(&opts.raw.ConfigPath, "config", "",
		"Read defaults from a TOML or YAML file, as --config=PATH (bare --config uses "+config.DefaultPath()+")")
	flags.Lookup("config").NoOptDefVal = config.DefaultPath()
	flags.BoolVar(&opts.listKeys, "list-keys", false,
		"List key names and exit")
	flags.BoolVar(&opts.diagnose, "diagnose", false,
		"Check keyboard access and exit")

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Enable verbose logging")

	return cmd
}

// noPositionalKeys rejects arguments, pointing at the key list syntax since
// "-k A B" is the usual mistake.
func noPositionalKeys(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return fmt.Errorf("unexpected argument %q: repeat the flag or comma-separate keys (-k A,B)", args[0])
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run wires the components and polls until ctx is done.
func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	source, err := keyboard.Open(logger)
	if err != nil {
		return fmt.Errorf("failed to open keyboard: %w", err)
	}
	defer source.Close()

	sinks := notify.Multi{notify.NewPrinter(cmd.OutOrStdout())}
	if cfg.DesktopNotify {
		desktop, err := notify.NewDesktop(logger)
		if err != nil {
			logger.Warn("desktop notifications disabled", "error", err)
		} else {
			defer desktop.Close()
			sinks = append(sinks, desktop)
		}
	}

	player := audio.NewManager(cfg, logger)
	player.Start()
	defer player.Stop()

	loop := trigger.NewLoop(cfg, source, player, sinks, logger)
	logger.Info("waiting for keys", "keys", cfg.Keys.String(), "file", cfg.File, "delay", cfg.Delay)

	err = loop.Run(ctx)
	loop.Wait()
	if err != nil {
		return err
	}

	logger.Info("shutting down")
	return nil
}

// setupLogger configures the global slog logger.
func setupLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for status lines
	handler := slog.NewTextHandler(os.Stderr, handlerOpts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
