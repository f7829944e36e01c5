package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/adalundhe/owlreasoner/core/config"
)

// WatchDefaultDebounce is how long watch waits for writes to settle before
// validating again.
const WatchDefaultDebounce = 200 * time.Millisecond

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <ontology.nt>",
	Short: "Validate an ontology whenever it or the configuration changes",
	Long: `Validate an N-Triples ontology, then keep watching the file and the
configuration files and validate again on every change. Press Ctrl+C to
stop.

Examples:
  owlreasoner watch family.nt
  owlreasoner watch timeline.nt --debounce 1s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", WatchDefaultDebounce, "Delay before validating after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	e, err := newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.manager.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s%sWatch Mode%s - Press Ctrl+C to stop\n", colorBold, colorCyan, colorReset)
	fmt.Fprintf(w, "%sWatching:%s %s\n", colorGray, colorReset, path)
	fmt.Fprintln(w)

	trigger := make(chan struct{}, 1)
	e.manager.OnChange(func(*config.Config) {
		e.logger.Debug("configuration changed")
		signalTrigger(trigger)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.manager.Watch(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return watchFile(gctx, path, watchDebounce, trigger)
	})
	g.Go(func() error {
		validateOnce(gctx, w, e, path)
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-trigger:
				validateOnce(gctx, w, e, path)
			}
		}
	})

	err = g.Wait()
	fmt.Fprintln(w, "\nWatch mode stopped.")
	return err
}

func signalTrigger(trigger chan<- struct{}) {
	select {
	case trigger <- struct{}{}:
	default:
	}
}

// validateOnce runs one validation pass with the current configuration and
// prints the report. Failures are printed and watching continues.
func validateOnce(ctx context.Context, w io.Writer, e *env, path string) {
	timestamp := time.Now().Format("15:04:05")
	cfg := e.manager.Get().Overlay(validateOverrides())

	report, err := validateFile(ctx, e, cfg, path)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "%s %s%v%s\n", timestamp, colorRed, err, colorReset)
		return
	}
	fmt.Fprintf(w, "%s%s%s\n", colorGray, timestamp, colorReset)
	outputRichValidationReport(w, report)
	fmt.Fprintln(w)
}

// watchFile signals trigger after path is written, created or renamed into
// place, once writes have been quiet for debounce. The parent directory is
// watched so editors that replace the file are followed.
func watchFile(ctx context.Context, path string, debounce time.Duration, trigger chan<- struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
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
			if event.Name != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { signalTrigger(trigger) })
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}
