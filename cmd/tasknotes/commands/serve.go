package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thisisthedave/tasknotes-sub010/internal/api"
	"github.com/thisisthedave/tasknotes-sub010/internal/config"
	taskerr "github.com/thisisthedave/tasknotes-sub010/internal/errors"
)

func NewServeCmd() *cobra.Command {
	var addr string
	var newToken, noAuth bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task vault over HTTP",
		Long: `Serve a REST API over the task vault.

Requests must carry the API token as a bearer token unless --no-auth is
set. The token lives in the system keyring when one is available, with a
file fallback under the data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadEnv()
			if err != nil {
				return err
			}

			tokens := api.NewTokenStore(config.DataDir())

			var token string
			if !noAuth {
				if newToken {
					token, err = api.GenerateToken()
					if err != nil {
						return fmt.Errorf("failed to generate token: %w", err)
					}
					if err := tokens.Set(token); err != nil {
						return fmt.Errorf("failed to store token: %w", err)
					}
					fmt.Fprintf(os.Stderr, "New API token: %s\n", token)
				} else {
					token, err = tokens.Get()
					if err != nil {
						return fmt.Errorf("no API token found; run with --new-token first: %w", err)
					}
				}
			}

			listen := cfg.ListenAddr
			if addr != "" {
				listen = addr
			}

			srv := &http.Server{
				Addr:              listen,
				Handler:           api.NewRouter(store, token, cfg.SuggestionLimit),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			handler := taskerr.NewSignalHandler(cancel)
			handler.Start()

			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				srv.Shutdown(shutdownCtx)
			}()

			fmt.Fprintf(os.Stderr, "Listening on http://%s\n", listen)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address override")
	cmd.Flags().BoolVar(&newToken, "new-token", false, "Generate and store a fresh API token")
	cmd.Flags().BoolVar(&noAuth, "no-auth", false, "Serve without authentication")
	return cmd
}
