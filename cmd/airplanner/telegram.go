package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"air-trip-planner/internal/telegram"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const sessionTTL = 24 * time.Hour

func newTelegramCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telegram",
		Short: "Run the Telegram bot webhook server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := cfg.RequireTelegram(); err != nil {
				return err
			}

			sessions := telegram.NewSessionRepository(func() telegram.Submitter {
				return newSubmitter(cfg, logger)
			})

			bot, err := telegram.NewBot(cfg.TelegramBotToken, telegram.Config{
				WebhookURL:     cfg.TelegramWebhookURL,
				AllowedUserIDs: cfg.TelegramAllowedUserIDs,
				SubmitTimeout:  cfg.RequestTimeout + cfg.FallbackDelay + 10*time.Second,
			}, sessions, logger)
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			bot.RegisterHandlers(mux)
			mux.Handle("/metrics", promhttp.Handler())

			srv := &http.Server{
				Addr:    cfg.TelegramAddr,
				Handler: mux,
			}

			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := sessions.CleanupExpired(sessionTTL); n > 0 {
							logger.Info().Int("removed", n).Msg("expired chat sessions removed")
						}
					}
				}
			}()

			serverErrors := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("telegram bot server listening")
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down server")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			logger.Info().Msg("server exiting")
			return nil
		},
	}
}
