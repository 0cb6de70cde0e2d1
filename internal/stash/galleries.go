package stash

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const findGalleriesQuery = `query FindGalleries($gallery_filter: GalleryFilterType, $filter: FindFilterType) {
  findGalleries(gallery_filter: $gallery_filter, filter: $filter) {
    count
    galleries { %s }
  }
}`

const galleryUpdateMutation = `mutation GalleryUpdate($input: GalleryUpdateInput!) {
  galleryUpdate(input: $input) { id }
}`

type findFilter struct {
	Page      int    `json:"page,omitempty"`
	PerPage   int    `json:"per_page"`
	Q         string `json:"q,omitempty"`
	Sort      string `json:"sort,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// FindGalleries returns every gallery matching filter, selecting the given
// GraphQL fields (for example "id title"). With a positive page size the
// results are fetched page by page in id order.
func (c *Client) FindGalleries(ctx context.Context, filter GalleryFilter, fields string) ([]Gallery, error) {
	fields = strings.TrimSpace(fields)
	if fields == "" {
		fields = "id"
	}
	query := fmt.Sprintf(findGalleriesQuery, fields)

	var out []Gallery
	page := 1
	for {
		ff := findFilter{PerPage: c.pageSize, Sort: "id", Direction: "ASC"}
		if c.pageSize > 0 {
			ff.Page = page
		}
		var resp struct {
			FindGalleries struct {
				Count     int       `json:"count"`
				Galleries []Gallery `json:"galleries"`
			} `json:"findGalleries"`
		}
		vars := map[string]any{"gallery_filter": filter, "filter": ff}
		if err := c.do(ctx, "findGalleries", query, vars, &resp); err != nil {
			return nil, err
		}
		out = append(out, resp.FindGalleries.Galleries...)
		if c.pageSize <= 0 || len(resp.FindGalleries.Galleries) == 0 || len(out) >= resp.FindGalleries.Count {
			return out, nil
		}
		page++
	}
}

// UpdateGallery applies a partial patch to one gallery.
func (c *Client) UpdateGallery(ctx context.Context, update GalleryUpdate) error {
	if strings.TrimSpace(update.ID) == "" {
		return errors.New("gallery update requires an id")
	}
	var resp struct {
		GalleryUpdate *struct {
			ID string `json:"id"`
		} `json:"galleryUpdate"`
	}
	if err := c.do(ctx, "galleryUpdate", galleryUpdateMutation, map[string]any{"input": update}, &resp); err != nil {
		return err
	}
	if resp.GalleryUpdate == nil {
		return fmt.Errorf("stash galleryUpdate: gallery %s not found", update.ID)
	}
	return nil
}
