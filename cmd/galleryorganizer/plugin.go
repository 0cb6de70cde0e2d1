package main

import (
	"context"
	"fmt"
	"io"

	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/pluginio"
	"galleryorganizer/internal/stash"
)

// runPlugin handles one task invocation from the plugin runtime. The result
// document is always written to stdout, including for failures.
func runPlugin(ctx context.Context, cmdCtx *commandContext, stdin io.Reader, stdout, stderr io.Writer) error {
	report := func(message string, err error) error {
		if writeErr := pluginio.WriteResult(stdout, message, err); writeErr != nil {
			return writeErr
		}
		if err != nil {
			return fmt.Errorf("%w: %w", errReported, err)
		}
		return nil
	}

	input, err := pluginio.ReadInput(stdin)
	if err != nil {
		return report("", err)
	}
	conn := input.ServerConnection

	cfg, err := cmdCtx.ensureConfig(conn.PluginDir)
	if err != nil {
		return report("", fmt.Errorf("load config: %w", err))
	}
	logger := logging.NewPlugin(stderr, cfg.Logging.Level)

	endpoint, err := conn.GraphQLURL()
	if err != nil {
		return report("", err)
	}
	opts := []stash.Option{stash.WithAPIKey(conn.APIKey)}
	if conn.SessionCookie != nil {
		opts = append(opts, stash.WithSessionCookie(conn.SessionCookie.Name, conn.SessionCookie.Value))
	}
	client, err := newStashClient(cfg, endpoint, opts...)
	if err != nil {
		return report("", err)
	}

	sess, err := openSession(cfg, logger, client, logging.NewPluginProgress(stderr), "plugin")
	if err != nil {
		logger.Error("startup failed", logging.Error(err))
		return report("", err)
	}
	defer sess.Close()

	logger.Debug("plugin invoked",
		logging.String("mode", input.Args.Mode),
		logging.String("endpoint", endpoint),
	)
	summary, err := sess.execute(ctx, input.Args.Mode)
	if err != nil {
		logger.Error("pass failed", logging.Error(err))
		return report("", err)
	}
	return report(resultMessage(input.Args.Mode, summary), nil)
}
