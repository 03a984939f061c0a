// Package cmd provides the root command and CLI setup for jrlgen.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"jrlgen/internal/config"
	"jrlgen/internal/eventbus"
	"jrlgen/internal/index"
	"jrlgen/internal/logging"
	"jrlgen/internal/session"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	configPath string
	index      string
	root       string
	debug      bool
}

// isTerminal reports whether w is an interactive terminal
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "jrlgen",
		Short: "Build JSON reading lists from a comic book index",
		Long: `jrlgen loads a newline separated index of file paths and lets you
filter it with a live query and collect matches into an ordered reading
list, exported as {"items":[{"type":"book","uri":"..."}]}.

Query terms are separated by single spaces and must appear in the path in
order, case insensitively. Without a terminal the full index is printed.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if !isTerminal(cmd.OutOrStdout()) {
				sess, err := a.loadSession(cmd.Context())
				if err != nil {
					return err
				}
				return printPaths(cmd.OutOrStdout(), sess.Filtered().Paths())
			}

			return a.runInteractive(cmd.Context(), cmd.OutOrStdout())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default ./"+config.FileName+")")
	flags.StringVarP(&opts.index, "index", "i", "", "index file path or http(s) URL (overrides config)")
	flags.StringVarP(&opts.root, "root", "r", "", "prefix joined to every index line (overrides config)")
	flags.BoolVar(&opts.debug, "debug", false, "write debug logs to "+logging.DefaultFile)

	cmd.AddCommand(newFilterCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newIndexCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

// app is the wiring shared by the commands of one invocation
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	bus     eventbus.EventBus
	cleanup []func()
}

func newApp(opts *rootOptions) (*app, error) {
	cs := config.NewConfigService()

	var (
		cfg  *config.Config
		path string
		err  error
	)
	if opts.configPath != "" {
		path = opts.configPath
		cfg, err = cs.LoadFromPath(path)
	} else {
		cfg, path, err = cs.Load()
	}
	if err != nil {
		return nil, err
	}

	// Flags override file values
	if opts.index != "" {
		cfg.Index = opts.index
	}
	if opts.root != "" {
		cfg.Root = opts.root
	}

	logCfg := logging.Config{Level: cfg.Logging.Level, FilePath: cfg.Logging.File}
	if opts.debug {
		logCfg.Level = "debug"
		if logCfg.FilePath == "" {
			logCfg.FilePath = logging.DefaultFile
		}
	}
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(logger)
	a := &app{
		cfg:     cfg,
		logger:  logger,
		bus:     bus,
		cleanup: []func(){closeLog, bus.Close, logging.LogEvents(bus, logger)},
	}

	bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Root: cfg.Root, Index: cfg.Index})
	logger.Info("starting", slog.String("config", path), slog.String("index", cfg.Index))

	return a, nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
}

func (a *app) newSession() *session.Session {
	return session.New(a.bus, a.logger)
}

func (a *app) newLoader() *index.Loader {
	return index.NewLoader(a.cfg.Index, a.cfg.Root, a.logger)
}

// loadSession loads the index synchronously for the non-interactive commands
func (a *app) loadSession(ctx context.Context) (*session.Session, error) {
	sess := a.newSession()

	paths, err := a.newLoader().Load(ctx)
	if err != nil {
		sess.OnLoadFailed(a.cfg.Index, err)
		return nil, err
	}

	sess.SetIndex(a.cfg.Index, paths)
	return sess, nil
}

func printPaths(w io.Writer, paths []string) error {
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}
