package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"galleryorganizer/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check the galleryorganizer.toml settings",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		pluginDir  string
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the sample configuration",
		Long: `Write the sample configuration with every section commented.

By default the file goes to ~/.config/galleryorganizer/config.toml. With
--plugin-dir it is written as galleryorganizer.toml inside the plugin's
directory, where plugin runs find it without a --config flag.`,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(strings.TrimSpace(targetPath), strings.TrimSpace(pluginDir))
			if err != nil {
				return err
			}
			if !overwrite {
				switch _, err := os.Stat(target); {
				case err == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(err, os.ErrNotExist):
					return fmt.Errorf("check config path: %w", err)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			if pluginDir == "" {
				fmt.Fprintln(out, "Set [stash] url and api_key (or STASH_URL and STASH_API_KEY) before `galleryorganizer run`.")
			}
			fmt.Fprintln(out, "Review [rules] if your titles use other categories, prefixes, or studio brands.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().StringVar(&pluginDir, "plugin-dir", "", "Write galleryorganizer.toml into this plugin directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	cmd.MarkFlagsMutuallyExclusive("path", "plugin-dir")
	return cmd
}

func initTarget(path, pluginDir string) (string, error) {
	switch {
	case pluginDir != "":
		dir, err := config.ExpandPath(pluginDir)
		if err != nil {
			return "", fmt.Errorf("resolve plugin dir: %w", err)
		}
		return config.PluginDirConfigPath(dir), nil
	case path != "":
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return filepath.Clean(expanded), nil
	default:
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return defaultPath, nil
	}
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and print the effective settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, resolved, exists, err := config.Load(strings.TrimSpace(path))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}

			out := cmd.OutOrStdout()
			source := resolved
			if !exists {
				source += " (not found; defaults used)"
			}
			fmt.Fprintf(out, "Config path: %s\n", source)
			fmt.Fprintln(out, renderTable([]string{"Section", "Setting", "Value"}, effectiveSettings(cfg), nil))
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func effectiveSettings(cfg *config.Config) [][]string {
	apiKey := "not set"
	if cfg.Stash.APIKey != "" {
		apiKey = "set"
	}
	journal := "disabled"
	if cfg.Journal.Enabled {
		journal = cfg.Journal.Path
	}
	return [][]string{
		{"stash", "url", cfg.Stash.URL},
		{"stash", "api_key", apiKey},
		{"stash", "page_size", strconv.Itoa(cfg.Stash.PageSize)},
		{"logging", "format/level", cfg.Logging.Format + "/" + cfg.Logging.Level},
		{"logging", "dir", cfg.Logging.Dir},
		{"journal", "path", journal},
		{"rules", "excluded_categories", strings.Join(cfg.Rules.ExcludedCategories, ", ")},
		{"rules", "platform_prefix", cfg.Rules.PlatformPrefix},
		{"rules", "studio_brands", strconv.Itoa(len(cfg.Rules.StudioBrands)) + " brands"},
		{"rules", "uncensored_tag", cfg.Rules.UncensoredTag},
		{"environment", "check_on_start", yesNo(cfg.Environment.CheckOnStart)},
	}
}
