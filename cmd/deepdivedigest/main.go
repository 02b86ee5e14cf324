package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"DeepDiveDigest/internal/app"
	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "deepdivedigest",
		Short:         "Build a curated three-section digest for a topic",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDigestCommand(), newServeCommand())
	return root
}

func newDigestCommand() *cobra.Command {
	var topic, lang string

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Run the pipeline once and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := newApplication(ctx)
			if err != nil {
				return err
			}

			result := application.Digest(ctx, topic, lang)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			if !result.Success {
				return fmt.Errorf("digest failed: %s", result.Error.Kind)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&topic, "topic", "", "topic to research")
	cmd.Flags().StringVar(&lang, "lang", "tr", "digest language (en or tr)")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newServeCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := newApplication(ctx)
			if err != nil {
				return err
			}
			return application.Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.address or DIGEST_HTTP_ADDR)")
	return cmd
}

func newApplication(ctx context.Context) (*app.Application, error) {
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		return nil, err
	}
	return application, nil
}
