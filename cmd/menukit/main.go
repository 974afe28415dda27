package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"menukit/internal/config"
	"menukit/internal/trace"
	"menukit/internal/ui"
)

// exitCancelled is returned when the menu is dismissed without a selection.
const exitCancelled = 130

var errCancelled = errors.New("cancelled")

type options struct {
	configPath string
	items      []string
	label      string
	search     string
	logFile    string
	trace      bool
}

func main() {
	err := newRootCmd().Execute()
	switch {
	case err == nil:
	case errors.Is(err, errCancelled):
		os.Exit(exitCancelled)
	default:
		fmt.Fprintf(os.Stderr, "menukit: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "menukit [flags] [item...]",
		Short: "Pick one item from a dropdown menu in the terminal.",
		Long: `menukit shows a dropdown menu and prints the value of the chosen item.

Items come from --config, --item and positional arguments, in that order.
Open the menu with enter or space, move with the arrow keys, home and end,
type to jump to a matching item, and confirm with enter. The mouse works too.
Exits 130 when dismissed without a selection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.items = append(o.items, args...)
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.Flags().Changed("trace"), o)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "menu definition file (TOML)")
	f.StringArrayVarP(&o.items, "item", "i", nil, "menu item (repeatable)")
	f.StringVarP(&o.label, "label", "l", "", "trigger label")
	f.StringVar(&o.search, "search", "", "type-ahead matching: prefix, fold or fuzzy")
	f.StringVar(&o.logFile, "log-file", "", "write debug logs to this file")
	f.BoolVar(&o.trace, "trace", false, "export spans over OTLP (see OTEL_EXPORTER_OTLP_ENDPOINT)")
	return cmd
}

// loadConfig merges the config file with flags. Flags win; items append.
func loadConfig(o options, traceSet bool) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	cfg.Items = append(cfg.Items, o.items...)
	if o.label != "" {
		cfg.Label = o.label
	}
	if o.search != "" {
		cfg.Search = o.search
	}
	if o.logFile != "" {
		cfg.LogFile = o.logFile
	}
	if traceSet {
		cfg.Trace.Enabled = o.trace
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { _ = f.Close() }, nil
}

func run(ctx context.Context, out io.Writer, traceSet bool, o options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(o, traceSet)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []ui.Option{ui.WithLogger(logger), ui.WithQuitOnSelect()}

	provider, err := trace.NewProvider(ctx, trace.Config{
		Enabled:     cfg.Trace.Enabled,
		ServiceName: cfg.Trace.ServiceName,
		Endpoint:    cfg.Trace.Endpoint,
	})
	if err != nil {
		return err
	}
	if provider != nil {
		rec := trace.NewRecorder(ctx, provider.Tracer())
		opts = append(opts, ui.WithObserver(rec))
		defer func() {
			rec.Flush()
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(sctx); err != nil {
				logger.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	model, err := ui.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer model.Close()
	logger.Debug("menu ready", "items", len(cfg.Entries()), "search", cfg.Search)

	// The menu draws on stderr so stdout carries only the result.
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}

	sel, ok := model.Selected()
	if !ok || !sel.OK {
		return errCancelled
	}
	fmt.Fprintln(out, sel.Value)
	return nil
}
