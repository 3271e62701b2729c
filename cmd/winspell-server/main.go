// Command winspell-server provides an HTTP REST API for spell checking.
//
// Usage:
//
//	winspell-server --addr :8080 --locale en-US
//	winspell-server --config winspell.yaml --dict words.yaml
//	WINSPELL_SERVER_ADDR=:9000 winspell-server
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Alfex4936/winspell/internal/config"
	"github.com/Alfex4936/winspell/winspell"
)

// Version is set at build time.
var Version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "winspell-server",
		Short:         "Serve the system spell checker over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "config file (yaml, toml or json)")
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	cmd.Flags().String("locale", "", "default locale (default en-US)")
	cmd.Flags().String("dict", "", "server-wide user dictionary, reloaded on change")
	cmd.Flags().String("hunspell-dict-dir", "", "hunspell dictionary directory (non-Windows hosts)")
	cmd.Flags().Duration("timeout", 0, "per-request timeout (default 8s)")
	cmd.Flags().String("log-level", "", "log level: debug | info | warn | error")
	cmd.Flags().String("log-format", "", "log format: text | json")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := cfg.Logger(os.Stderr, "winspell-server")
	if err != nil {
		return err
	}

	sc, err := winspell.New(cfg.Locale, cfg.CheckerOptions(logger)...)
	if err != nil {
		return err
	}
	defer sc.Close()

	srv := winspell.NewServer(sc,
		winspell.WithServerLogger(logger),
		winspell.WithTimeout(cfg.Server.Timeout),
		winspell.WithCheckerOptions(cfg.CheckerOptions(logger)...),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Dict != "" {
		err := winspell.WatchDict(ctx, cfg.Dict, func(d *winspell.Dict) {
			srv.SetDict(d)
			logger.Info("dictionary loaded", "path", cfg.Dict, "words", d.Len())
		}, logger)
		if err != nil {
			return err
		}
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return err
	}
	hs := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("listening", "addr", ln.Addr().String(), "locale", sc.Locale())
	logger.Info("routes", "check", "POST /v1/check-spell", "locales", "GET /v1/locales", "health", "GET /health", "docs", "GET /")
	err = runHTTP(ctx, hs, ln, shutdownGrace)
	logger.Info("stopped", "err", err)
	return err
}

const shutdownGrace = 5 * time.Second

// runHTTP serves on ln until ctx is done, then shuts hs down. It returns
// only after in-flight requests have finished or grace has run out, so
// the checker they use can be closed afterwards.
func runHTTP(ctx context.Context, hs *http.Server, ln net.Listener, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	err := hs.Shutdown(shutdown)
	if serveErr := <-errc; !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	return err
}
