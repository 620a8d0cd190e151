package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/dpane/internal/app"
	"github.com/kk-code-lab/dpane/internal/config"
	"github.com/kk-code-lab/dpane/internal/logging"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	logFile    string
	debug      bool
	resultFile string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "dpane [LEFT [RIGHT]]",
		Short: "Dual-pane terminal file manager",
		Long: `dpane shows two directory listings side by side.

Listings follow changes on disk while keeping the cursor and the marked
entries on the same files. The last visited entry of every directory is
remembered between runs.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "settings file (default: user config dir)")
	flags.StringVar(&opts.logFile, "log-file", "", "write a log to this file")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.StringVar(&opts.resultFile, "result-file", "", "write the focused directory here on exit")
	return cmd
}

func run(ctx context.Context, opts options, args []string) error {
	cfgPath := opts.configPath
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if opts.logFile != "" {
		logPath = opts.logFile
	}
	log, logCloser, err := logging.New(logPath, opts.debug)
	if err != nil {
		return err
	}
	defer func() { _ = logCloser.Close() }()

	var bookmarks *config.BookmarkStore
	if p, err := config.DefaultBookmarkPath(); err != nil {
		log.Warn().Err(err).Msg("bookmarks disabled")
	} else {
		bookmarks = config.NewBookmarkStore(p)
	}

	appOpts := apppkg.Options{
		Config:    cfg,
		Bookmarks: bookmarks,
		Logger:    log,
	}
	if len(args) > 0 {
		appOpts.LeftPath = args[0]
	}
	if len(args) > 1 {
		appOpts.RightPath = args[1]
	}

	// Set UTF-8 as fallback encoding for terminals with an unknown locale
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	app, err := apppkg.NewApplication(appOpts)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	app.Run(ctx)
	path := app.ActivePath()
	if err := app.Close(); err != nil {
		log.Warn().Err(err).Msg("shutdown")
	}

	if opts.resultFile != "" && path != "" {
		// owner only; the file may live in a shared temp directory
		if err := os.WriteFile(opts.resultFile, []byte(path), 0o600); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "dpane: %v\n", err)
		stop()
		os.Exit(1)
	}
}
