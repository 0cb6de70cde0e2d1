package organizer

import (
	"context"

	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/stash"
)

const titleFields = "id files { basename } folder { path }"

// FillTitles sets a title on every untitled gallery from its folder name, or
// from its first file name without the extension. quiet suppresses banners
// and progress; other passes run it quietly before reading titles.
func (o *Organizer) FillTitles(ctx context.Context, quiet bool) (*Summary, error) {
	ctx, run := o.startPass(ctx, ModeTitle, quiet)
	galleries, err := run.find(ctx, stash.GalleryFilter{Title: stash.IsNull()}, titleFields, "without title")
	if err != nil {
		return run.summary, err
	}

	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, logger := run.galleryContext(ctx, gallery.ID)

		folder := ""
		if gallery.Folder != nil {
			folder = gallery.Folder.Path
		}
		basenames := make([]string, 0, len(gallery.Files))
		for _, file := range gallery.Files {
			basenames = append(basenames, file.Basename)
		}

		title, ok := inference.TitleFromSources(folder, basenames)
		if !ok {
			run.settle(gctx, gallery.ID, "", run.skip("derive title", "gallery has no folder or file name"))
			run.step(i + 1)
			continue
		}
		logger.Debug("derived title", logging.String("title", title))
		err := run.update(gctx, stash.GalleryUpdate{ID: gallery.ID, Title: stash.StringPtr(title)})
		run.settle(gctx, gallery.ID, "title="+title, err)
		run.step(i + 1)
	}
	return run.complete(), nil
}
