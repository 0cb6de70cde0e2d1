package organizer

import (
	"context"

	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/stash"
)

// FillDates parses the first YYYY.MM.DD in each undated title into the date.
func (o *Organizer) FillDates(ctx context.Context) (*Summary, error) {
	if _, err := o.FillTitles(ctx, true); err != nil {
		return nil, err
	}

	ctx, run := o.startPass(ctx, ModeDate, false)
	filter := stash.GalleryFilter{
		Date:  stash.IsNull(),
		Title: stash.MatchesRegex(inference.DatePattern),
	}
	galleries, err := run.find(ctx, filter, "id title", "without date")
	if err != nil {
		return run.summary, err
	}

	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, _ := run.galleryContext(ctx, gallery.ID)

		date, ok := inference.ExtractDate(gallery.Title)
		if !ok {
			run.settle(gctx, gallery.ID, "", run.skip("extract date", "title has no YYYY.MM.DD date"))
			run.step(i + 1)
			continue
		}
		err := run.update(gctx, stash.GalleryUpdate{ID: gallery.ID, Date: stash.StringPtr(date)})
		run.settle(gctx, gallery.ID, "date="+date, err)
		run.step(i + 1)
	}
	return run.complete(), nil
}
