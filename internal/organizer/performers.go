package organizer

import (
	"context"
	"slices"
	"strings"

	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/services"
	"galleryorganizer/internal/stash"
)

// AddPerformers attaches the performers named in the final underscore segment
// of each title to galleries that have none. A gallery whose names resolve to
// nobody is left untouched.
func (o *Organizer) AddPerformers(ctx context.Context) (*Summary, error) {
	if _, err := o.FillTitles(ctx, true); err != nil {
		return nil, err
	}

	ctx, run := o.startPass(ctx, ModePerformers, false)
	filter := stash.GalleryFilter{PerformerCount: stash.CountEquals(0)}
	galleries, err := run.find(ctx, filter, "id title", "without performers")
	if err != nil {
		return run.summary, err
	}

	cache := NewPerformerCache()
	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, _ := run.galleryContext(ctx, gallery.ID)

		ids, err := o.resolvePerformers(gctx, cache, inference.PerformerCandidates(gallery.Title))
		switch {
		case err != nil:
			err = services.Wrap(services.ErrTransient, string(ModePerformers), "find performers", "Performer lookup failed", err)
		case len(ids) == 0:
			err = run.skip("match performers", "no performer matched the title")
		default:
			err = run.update(gctx, stash.GalleryUpdate{ID: gallery.ID, PerformerIDs: stash.StringsPtr(ids...)})
		}
		run.settle(gctx, gallery.ID, "performer_ids="+strings.Join(ids, ","), err)
		run.step(i + 1)
	}
	return run.complete(), nil
}

// resolvePerformers returns the distinct ids of performers whose name or
// alias equals one of candidates, in candidate order.
func (o *Organizer) resolvePerformers(ctx context.Context, cache *PerformerCache, candidates []string) ([]string, error) {
	var ids []string
	for _, name := range candidates {
		accepted, ok := cache.Lookup(name)
		if !ok {
			performers, err := o.store.FindPerformers(ctx, name)
			if err != nil {
				return nil, err
			}
			accepted = nil
			for _, performer := range performers {
				if inference.MatchesName(name, performer.Name, performer.AliasList) {
					accepted = append(accepted, performer.ID)
				}
			}
			cache.Store(name, accepted)
		}
		for _, id := range accepted {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
