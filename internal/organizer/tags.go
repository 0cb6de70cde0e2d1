package organizer

import (
	"context"
	"slices"
	"strings"

	"galleryorganizer/internal/inference"
	"galleryorganizer/internal/logging"
	"galleryorganizer/internal/services"
	"galleryorganizer/internal/stash"
)

const tagFields = "id title tags { id name aliases }"

// AddTags sets each sparsely tagged gallery's tags to the category and tag
// names found in its title. Labels without a matching tag are counted and the
// recurring ones are reported once the pass finishes.
func (o *Organizer) AddTags(ctx context.Context) (*Summary, error) {
	if _, err := o.FillTitles(ctx, true); err != nil {
		return nil, err
	}

	ctx, run := o.startPass(ctx, ModeTags, false)
	filter := stash.GalleryFilter{TagCount: stash.CountLessThan(2)}
	if o.exclusionPattern != "" {
		filter.Title = stash.NotMatchesRegex(o.exclusionPattern)
	}
	galleries, err := run.find(ctx, filter, tagFields, "to add tags")
	if err != nil {
		return run.summary, err
	}

	cache := NewTagCache()
	unresolved := NewUnresolvedTags()
	for i, gallery := range galleries {
		if err := ctx.Err(); err != nil {
			return run.summary, err
		}
		gctx, logger := run.galleryContext(ctx, gallery.ID)
		cache.Seed(gallery.Tags)

		labels, ok := inference.TagLabels(gallery.Title)
		if !ok {
			logging.WarnWithContext(logger, "title has no bracketed category", "tag_category_missing",
				logging.String("title", gallery.Title),
				logging.String(logging.FieldErrorHint, "rename the gallery to start with [category]"),
				logging.String(logging.FieldImpact, "no tags inferred for this gallery"),
			)
			run.settle(gctx, gallery.ID, "", run.skip("extract tags", "title has no bracketed category"))
			run.step(i + 1)
			continue
		}

		ids, err := o.resolveTags(gctx, cache, unresolved, labels)
		if err != nil {
			err = services.Wrap(services.ErrTransient, string(ModeTags), "find tag", "Tag lookup failed", err)
		} else {
			err = run.update(gctx, stash.GalleryUpdate{ID: gallery.ID, TagIDs: stash.StringsPtr(ids...)})
		}
		run.settle(gctx, gallery.ID, "tag_ids="+strings.Join(ids, ","), err)
		run.step(i + 1)
	}

	if names := unresolved.Frequent(2); len(names) > 0 {
		run.summary.Unresolved = names
		logging.WarnWithContext(run.logger, "unresolved tags: "+strings.Join(names, ", "), "tags_unresolved",
			logging.Int("distinct", unresolved.Len()),
			logging.String(logging.FieldErrorHint, "create these tags or add them as aliases"),
			logging.String(logging.FieldImpact, "galleries were tagged without these labels"),
		)
	}
	return run.complete(), nil
}

// resolveTags returns the distinct tag ids for labels in first-resolution
// order. Labels that match no tag name or alias are counted in unresolved.
func (o *Organizer) resolveTags(ctx context.Context, cache *TagCache, unresolved *UnresolvedTags, labels []string) ([]string, error) {
	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		id, ok := cache.Lookup(label)
		if !ok {
			tag, err := o.store.FindTag(ctx, label)
			if err != nil {
				return nil, err
			}
			if tag == nil || !inference.MatchesName(label, tag.Name, tag.Aliases) {
				unresolved.Add(label)
				continue
			}
			id = tag.ID
			cache.Store(label, id)
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
