package organizer

import (
	"context"

	"galleryorganizer/internal/logging"
)

// Mode names one maintenance pass. The values are the host task modes.
type Mode string

const (
	ModeTitle      Mode = "galleries_title"
	ModeDate       Mode = "galleries_date"
	ModePerformers Mode = "galleries_performers"
	ModeTags       Mode = "galleries_tags"
	ModePlatform   Mode = "add_jvid_metadata"
	ModeStudio     Mode = "add_xiuren_metadata"
)

// PassInfo describes a pass for banners and listings.
type PassInfo struct {
	Mode        Mode
	Name        string
	Description string
}

var passes = []PassInfo{
	{ModeTitle, "Fill galleries title", "Derive missing titles from the folder or first file name"},
	{ModeDate, "Fill galleries date", "Parse YYYY.MM.DD from titles into the date field"},
	{ModePerformers, "Add galleries performers", "Attach performers named in the last title segment"},
	{ModeTags, "Add galleries tags", "Attach the category and tags named in the title"},
	{ModePlatform, "Add jvid metadata", "Set the platform code and URL for platform galleries"},
	{ModeStudio, "Add xiuren metadata", "Set the series code and uncensored tag for studio galleries"},
}

// Passes lists every pass in dispatch order.
func Passes() []PassInfo {
	return append([]PassInfo(nil), passes...)
}

// ParseMode matches value exactly against the known modes.
func ParseMode(value string) (Mode, bool) {
	for _, info := range passes {
		if string(info.Mode) == value {
			return info.Mode, true
		}
	}
	return "", false
}

func passName(mode Mode) string {
	for _, info := range passes {
		if info.Mode == mode {
			return info.Name
		}
	}
	return string(mode)
}

// Run dispatches to the pass selected by mode, matched exactly. An unknown or
// empty mode is logged and ignored: the returned summary is nil and no request is made.
func (o *Organizer) Run(ctx context.Context, mode string) (*Summary, error) {
	selected, ok := ParseMode(mode)
	if !ok {
		logging.WarnWithContext(o.logger, "unknown mode; nothing to do", "unknown_mode",
			logging.String("mode", mode),
			logging.String(logging.FieldErrorHint, "use one of the modes listed by `galleryorganizer modes`"),
			logging.String(logging.FieldImpact, "no galleries were changed"),
		)
		return nil, nil
	}

	switch selected {
	case ModeTitle:
		return o.FillTitles(ctx, false)
	case ModeDate:
		return o.FillDates(ctx)
	case ModePerformers:
		return o.AddPerformers(ctx)
	case ModeTags:
		return o.AddTags(ctx)
	case ModePlatform:
		return o.AddPlatformMetadata(ctx)
	case ModeStudio:
		return o.AddStudioMetadata(ctx)
	}
	return nil, nil
}
