package config

const (
	defaultStashURL            = "http://localhost:9999"
	defaultStashTimeoutSeconds = 30
	defaultStashPageSize       = -1
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogDir              = "~/.local/share/galleryorganizer/logs"
	defaultJournalEnabled      = true
	defaultJournalPath         = "~/.local/share/galleryorganizer/journal.db"
	defaultPlatformPrefix      = "[写真]JVID"
	defaultPlatformURLTemplate = "https://www.jvid.com/v/%s"
	defaultUncensoredTag       = "Uncensored"
)

var (
	defaultExcludedCategories = []string{"杂图", "写真"}
	defaultStudioBrands       = []string{
		"XIUREN", "MFStar", "MiStar", "MyGirl", "IMiss", "YouMi", "UXING",
		"FeiLin", "MiiTao", "HuaYang", "XiaoYu", "YouWu", "Candy", "Tukmo",
		"LeYuan", "HuaYan", "WingS", "Taste", "MintYe", "Micat",
	}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stash: Stash{
			URL:            defaultStashURL,
			TimeoutSeconds: defaultStashTimeoutSeconds,
			PageSize:       defaultStashPageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
			Path:    defaultJournalPath,
		},
		Rules: Rules{
			ExcludedCategories:  append([]string(nil), defaultExcludedCategories...),
			PlatformPrefix:      defaultPlatformPrefix,
			PlatformURLTemplate: defaultPlatformURLTemplate,
			StudioBrands:        append([]string(nil), defaultStudioBrands...),
			UncensoredTag:       defaultUncensoredTag,
		},
	}
}
