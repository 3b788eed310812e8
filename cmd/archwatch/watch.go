package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openarch/archwatch/internal/common/logger"
	"github.com/openarch/archwatch/internal/common/output"
	"github.com/openarch/archwatch/internal/updates"
	"github.com/openarch/archwatch/internal/watcher"
	"github.com/spf13/cobra"
)

var (
	// watchConfigPath overrides the default config file location
	watchConfigPath string
	// watchLogFile enables logging to the state directory
	watchLogFile bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for updates continuously",
	Long: `Poll all update sources on a schedule and print results as they arrive.

Most ticks re-evaluate cached data against the local package state; every
online_check_period-th tick queries the network. SIGUSR1 forces an
immediate online check.

Examples:
  archwatch watch              Watch with the configured schedule
  archwatch watch --log        Also write logs to the state directory`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "", "Path to config file")
	watchCmd.Flags().BoolVar(&watchLogFile, "log", false, "Write logs to the state directory")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig(watchConfigPath)

	if watchLogFile {
		if err := logger.Default().EnableFileLogging(); err != nil {
			logger.Error("enabling file logging: %v", err)
			os.Exit(1)
		}
		defer logger.Default().Close()
	}

	checker := updates.NewChecker(updates.WithDevelSuffixes(cfg.DevelSuffixes))
	w := watcher.New(checker, watcher.Options{
		Interval:          cfg.Interval(),
		OnlineCheckPeriod: cfg.OnlineCheckPeriod,
		Timeout:           cfg.Timeout(),
	})

	exclude := make([]watcher.Source, 0, len(cfg.Exclude))
	for _, src := range cfg.Exclude {
		exclude = append(exclude, watcher.Source(src))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresh := make(chan os.Signal, 1)
	signal.Notify(refresh, syscall.SIGUSR1)
	defer signal.Stop(refresh)
	go forwardRefresh(ctx, refresh, w)

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()

	output.PrintInfo("Watching for updates every %s (online every %d ticks)", cfg.Interval(), cfg.OnlineCheckPeriod)

	for {
		select {
		case event := <-w.Events():
			printEvent(event, exclude)
		case err := <-done:
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("watcher stopped: %v", err)
				os.Exit(1)
			}
			fmt.Println()
			output.PrintInfo("Stopped")
			return
		}
	}
}

// forwardRefresh turns received signals into watcher refreshes until ctx
// is done. signal.Stop alone would leave the range blocked forever since
// it never closes the channel.
func forwardRefresh(ctx context.Context, signals <-chan os.Signal, w *watcher.Watcher) {
	for {
		select {
		case <-signals:
			logger.Info("refresh requested")
			w.ForceRefresh()
		case <-ctx.Done():
			return
		}
	}
}

func printEvent(event watcher.Event, exclude []watcher.Source) {
	if event.Err != "" {
		output.PrintWarning("%s", event.Err)
		return
	}

	status := event.Status
	stamp := time.Now().Format("15:04:05")

	output.Dim.Printf("[%s] ", stamp)
	total := status.TotalDue(exclude...)
	if total == 0 {
		output.Success.Print("up to date")
	} else {
		output.Info.Printf("%d update(s) due", total)
	}
	fmt.Printf("  pacman:%s aur:%s devel:%s",
		formatHistoryCount(status.Pacman.Count(), status.Pacman.State()),
		formatHistoryCount(status.Aur.Count(), status.Aur.State()),
		formatHistoryCount(status.Devel.Count(), status.Devel.State()))
	if !status.LastOnline.IsZero() {
		output.Dim.Printf("  (online %s)", status.LastOnline.Format("15:04:05"))
	}
	fmt.Println()
}

// formatHistoryCount renders a per-source count, marking error states so
// stale data is never mistaken for fresh data.
func formatHistoryCount(count int, state watcher.HistoryState) string {
	switch state {
	case watcher.StateOk:
		return fmt.Sprintf("%d", count)
	case watcher.StateErrorWithHistory:
		return output.Stale.Sprintf("%d?", count)
	default:
		return output.Error.Sprint("!")
	}
}
