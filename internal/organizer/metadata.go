package organizer

import (
	"context"
	"slices"
	"strings"

	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/stash"
)

// AddPlatformMetadata sets the platform code and canonical URL on galleries
// whose title starts with the platform prefix. Existing URLs are kept.
func (o *Organizer) AddPlatformMetadata(ctx context.Context) (*Summary, error) {
	if _, err := o.FillTitles(ctx, true); err != nil {
		return nil, err
	}

	ctx, run := o.startPass(ctx, ModePlatform, false)
	filter := stash.GalleryFilter{Title: stash.MatchesRegex(o.platformPattern)}
	galleries, err := run.find(ctx, filter, "id title urls", "from "+o.rules.PlatformPrefix)
	if err != nil {
		return run.summary, err
	}

	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, _ := run.galleryContext(ctx, gallery.ID)

		code, ok := inference.PlatformCode(gallery.Title)
		if !ok {
			run.settle(gctx, gallery.ID, "", run.skip("extract code", "title has no _CODE_ segment"))
			run.step(i + 1)
			continue
		}
		url := inference.PlatformURL(o.rules.PlatformURLTemplate, code)
		urls := gallery.URLs
		if !slices.Contains(urls, url) {
			urls = append(slices.Clone(urls), url)
		}
		err := run.update(gctx, stash.GalleryUpdate{
			ID:   gallery.ID,
			Code: stash.StringPtr(code),
			URLs: stash.StringsPtr(urls...),
		})
		run.settle(gctx, gallery.ID, "code="+code+" url="+url, err)
		run.step(i + 1)
	}
	return run.complete(), nil
}

// AddStudioMetadata sets the Vol./No. series code on studio galleries and
// attaches the uncensored tag when the title says so. The gallery's existing
// tags are kept.
func (o *Organizer) AddStudioMetadata(ctx context.Context) (*Summary, error) {
	if _, err := o.FillTitles(ctx, true); err != nil {
		return nil, err
	}

	ctx, run := o.startPass(ctx, ModeStudio, false)
	if o.studioPattern == "" {
		run.logger.Info("no studio brands configured")
		return run.complete(), nil
	}
	uncensoredID := o.uncensoredTagID(ctx, run)

	filter := stash.GalleryFilter{Title: stash.MatchesRegex(o.studioPattern)}
	galleries, err := run.find(ctx, filter, tagFields, "from studio brands")
	if err != nil {
		return run.summary, err
	}

	marker := strings.TrimSpace(o.rules.UncensoredTag)
	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, _ := run.galleryContext(ctx, gallery.ID)

		code, ok := inference.SeriesCode(gallery.Title)
		if !ok {
			run.settle(gctx, gallery.ID, "", run.skip("extract code", "title has no Vol. or No. number"))
			run.step(i + 1)
			continue
		}
		tagIDs := gallery.TagIDs()
		if uncensoredID != "" && marker != "" && strings.Contains(gallery.Title, marker) && !slices.Contains(tagIDs, uncensoredID) {
			tagIDs = append(tagIDs, uncensoredID)
		}
		err := run.update(gctx, stash.GalleryUpdate{
			ID:     gallery.ID,
			Code:   stash.StringPtr(code),
			TagIDs: stash.StringsPtr(tagIDs...),
		})
		run.settle(gctx, gallery.ID, "code="+code+" tag_ids="+strings.Join(tagIDs, ","), err)
		run.step(i + 1)
	}
	return run.complete(), nil
}

// uncensoredTagID resolves the configured uncensored tag once per pass. A
// failed or empty lookup disables tagging for the pass.
func (o *Organizer) uncensoredTagID(ctx context.Context, run *passRun) string {
	name := strings.TrimSpace(o.rules.UncensoredTag)
	if name == "" {
		return ""
	}
	tag, err := o.store.FindTag(ctx, name)
	if err != nil {
		logging.WarnWithContext(run.logger, "uncensored tag lookup failed", "tag_lookup_failed",
			logging.String("tag", name),
			logging.Error(err),
			logging.String(logging.FieldImpact, "uncensored galleries are not tagged this run"),
		)
		return ""
	}
	if tag == nil || !inference.MatchesName(name, tag.Name, tag.Aliases) {
		run.logger.Info("uncensored tag not found", logging.String("tag", name))
		return ""
	}
	return tag.ID
}
