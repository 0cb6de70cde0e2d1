package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeStash()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeRules()
	return nil
}

func (c *Config) normalizeStash() {
	if strings.TrimSpace(c.Stash.URL) == "" {
		if value, ok := os.LookupEnv("STASH_URL"); ok {
			c.Stash.URL = value
		}
	}
	if c.Stash.APIKey == "" {
		if value, ok := os.LookupEnv("STASH_API_KEY"); ok {
			c.Stash.APIKey = value
		}
	}
	c.Stash.URL = strings.TrimRight(strings.TrimSpace(c.Stash.URL), "/")
	if c.Stash.URL == "" {
		c.Stash.URL = defaultStashURL
	}
	c.Stash.APIKey = strings.TrimSpace(c.Stash.APIKey)
	if c.Stash.TimeoutSeconds <= 0 {
		c.Stash.TimeoutSeconds = defaultStashTimeoutSeconds
	}
	if c.Stash.PageSize == 0 {
		c.Stash.PageSize = defaultStashPageSize
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeRules() {
	c.Rules.ExcludedCategories = compactStrings(c.Rules.ExcludedCategories)
	c.Rules.StudioBrands = compactStrings(c.Rules.StudioBrands)
	c.Rules.PlatformPrefix = strings.TrimSpace(c.Rules.PlatformPrefix)
	if c.Rules.PlatformPrefix == "" {
		c.Rules.PlatformPrefix = defaultPlatformPrefix
	}
	c.Rules.PlatformURLTemplate = strings.TrimSpace(c.Rules.PlatformURLTemplate)
	if c.Rules.PlatformURLTemplate == "" {
		c.Rules.PlatformURLTemplate = defaultPlatformURLTemplate
	}
	c.Rules.UncensoredTag = strings.TrimSpace(c.Rules.UncensoredTag)
	if c.Rules.UncensoredTag == "" {
		c.Rules.UncensoredTag = defaultUncensoredTag
	}
}

func compactStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
