package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/organizer"
	"galleryorganizer/internal/stash"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var urlFlag string
	var apiKeyFlag string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "run <mode>",
		Short: "Run one maintenance pass against the configured server",
		Long: "Run one maintenance pass outside the plugin runtime. Modes are listed by\n" +
			"`galleryorganizer modes`; an unknown mode is logged and ignored.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if v := strings.TrimSpace(urlFlag); v != "" {
				cfg.Stash.URL = v
			}
			if v := strings.TrimSpace(apiKeyFlag); v != "" {
				cfg.Stash.APIKey = v
			}
			if quiet {
				cfg.Logging.Level = "warn"
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			client, err := newStashClient(cfg, stash.EndpointFromBaseURL(cfg.Stash.URL), stash.WithAPIKey(cfg.Stash.APIKey))
			if err != nil {
				return err
			}

			var progress logging.Progress = logging.NopProgress
			if !quiet {
				progress = logging.NewLogProgress(logger, 10)
			}
			sess, err := openSession(cfg, logger, client, progress, "cli")
			if err != nil {
				return err
			}
			defer sess.Close()

			mode := args[0]
			summary, err := sess.execute(cmd.Context(), mode)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if summary == nil {
				fmt.Fprintln(out, resultMessage(mode, summary))
				return nil
			}
			fmt.Fprintln(out, renderSummary(summary))
			for _, failure := range summary.Failures {
				fmt.Fprintf(out, "failed gallery %s: %v\n", failure.GalleryID, failure.Err)
			}
			if len(summary.Unresolved) > 0 {
				fmt.Fprintf(out, "Unresolved tags: %s\n", strings.Join(summary.Unresolved, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "Stash server URL (overrides stash.url)")
	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", "Stash API key (overrides stash.api_key)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	return cmd
}

func renderSummary(summary *organizer.Summary) string {
	headers := []string{"Mode", "Matched", "Updated", "Skipped", "Failed"}
	rows := [][]string{{
		string(summary.Mode),
		strconv.Itoa(summary.Matched),
		strconv.Itoa(summary.Updated),
		strconv.Itoa(summary.Skipped),
		strconv.Itoa(summary.Failed()),
	}}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight})
}

func newModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "modes",
		Short:       "List the maintenance passes",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			passes := organizer.Passes()
			rows := make([][]string, 0, len(passes))
			for _, info := range passes {
				rows = append(rows, []string{string(info.Mode), info.Name, info.Description})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Mode", "Pass", "Description"}, rows, nil))
			return nil
		},
	}
}
