package main

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"galleryorganizer/internal/config"
	"galleryorganizer/internal/deps"
	"galleryorganizer/internal/journal"
	"galleryorganizer/internal/preflight"
	"galleryorganizer/internal/stash"
)

func configuredClient(ctx *commandContext) (*stash.Client, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return newStashClient(cfg, stash.EndpointFromBaseURL(cfg.Stash.URL), stash.WithAPIKey(cfg.Stash.APIKey))
}

func newCheckEnvCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-env",
		Short: "Check external tools, local directories, and the server connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			statuses, envErr := deps.Ensure(runtime.GOOS)

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				detail := status.Detail
				if status.Available {
					detail = status.Path
				}
				rows = append(rows, []string{status.Name, status.Command, yesNo(status.Available), detail})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Available", "Detail"}, rows, nil))
			}

			client, err := configuredClient(ctx)
			if err != nil {
				return err
			}
			cfg, _ := ctx.ensureConfig()
			results := preflight.RunAll(cmd.Context(), cfg, client)
			checkRows := make([][]string, 0, len(results))
			for _, result := range results {
				status := "OK"
				if !result.Passed {
					status = "FAIL"
				}
				checkRows = append(checkRows, []string{result.Name, status, result.Detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil))

			plugins, err := client.PluginConfiguration(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "Plugin settings: unavailable (%v)\n", err)
			} else {
				fmt.Fprintf(out, "Plugin settings: %s\n", config.PluginSettingsFrom(plugins))
			}
			if failed := preflight.Failed(results); len(failed) > 0 && envErr == nil {
				envErr = fmt.Errorf("preflight checks failed: %s", strings.Join(failed, ", "))
			}
			return envErr
		},
	}
}

func newPathsCommand(ctx *commandContext) *cobra.Command {
	var galleriesOnly bool

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the server's library paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := configuredClient(ctx)
			if err != nil {
				return err
			}
			paths, err := client.LibraryPaths(cmd.Context())
			if err != nil {
				return fmt.Errorf("query library paths: %w", err)
			}
			out := cmd.OutOrStdout()
			if galleriesOnly {
				for _, p := range stash.GalleryPaths(paths) {
					fmt.Fprintln(out, p)
				}
				return nil
			}
			rows := make([][]string, 0, len(paths))
			for _, p := range paths {
				rows = append(rows, []string{p.Path, yesNo(!p.ExcludeVideo), yesNo(!p.ExcludeImage)})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Videos", "Images"}, rows, nil))
			return nil
		},
	}
	cmd.Flags().BoolVar(&galleriesOnly, "galleries", false, "Print only paths scanned for images, one per line")
	return cmd
}

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Journal.Enabled {
				return fmt.Errorf("journal is disabled in %s", ctx.configPath)
			}
			store, err := journal.Open(cfg.Journal.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistory(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func renderHistory(runs []journal.RunRecord) string {
	headers := []string{"Run", "Mode", "Source", "Started", "Duration", "Updated", "Skipped", "Failed", "Error"}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := "running"
		if run.Finished() {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			shortID(run.ID),
			run.Mode,
			run.Source,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			strconv.Itoa(run.Counts.Updated),
			strconv.Itoa(run.Counts.Skipped),
			strconv.Itoa(run.Counts.Failed),
			truncate(run.Error, 60),
		})
	}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft}
	return renderTable(headers, rows, aligns)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
