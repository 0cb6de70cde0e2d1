package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStash(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStash() error {
	parsed, err := url.Parse(c.Stash.URL)
	if err != nil {
		return fmt.Errorf("stash.url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("stash.url must use http or https, got %q", c.Stash.URL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("stash.url must include a host, got %q", c.Stash.URL)
	}
	if c.Stash.RequestsPerSecond < 0 {
		return errors.New("stash.requests_per_second must be zero or positive")
	}
	if c.Stash.PageSize < -1 {
		return errors.New("stash.page_size must be -1 or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "plugin":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console, json, or plugin)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateRules() error {
	if strings.Count(c.Rules.PlatformURLTemplate, "%s") != 1 {
		return errors.New("rules.platform_url_template must contain exactly one %s placeholder")
	}
	if len(c.Rules.StudioBrands) == 0 {
		return errors.New("rules.studio_brands must list at least one brand")
	}
	for _, category := range c.Rules.ExcludedCategories {
		if strings.ContainsAny(category, "[]") {
			return fmt.Errorf("rules.excluded_categories: %q must not contain brackets", category)
		}
	}
	return nil
}
