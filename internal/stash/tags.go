package stash

import (
	"context"
	"strings"
)

const findTagsQuery = `query FindTags($tag_filter: TagFilterType, $filter: FindFilterType) {
  findTags(tag_filter: $tag_filter, filter: $filter) {
    tags { id name aliases }
  }
}`

const findPerformersQuery = `query FindPerformers($filter: FindFilterType) {
  findPerformers(filter: $filter) {
    performers { id name alias_list }
  }
}`

// FindTag looks a tag up by exact name, then by exact alias. It returns nil
// without error when neither matches.
func (c *Client) FindTag(ctx context.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	for _, field := range []string{"name", "aliases"} {
		tags, err := c.findTags(ctx, field, name)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			tag := tags[0]
			return &tag, nil
		}
	}
	return nil, nil
}

func (c *Client) findTags(ctx context.Context, field, value string) ([]Tag, error) {
	var resp struct {
		FindTags struct {
			Tags []Tag `json:"tags"`
		} `json:"findTags"`
	}
	vars := map[string]any{
		"tag_filter": map[string]any{field: StringCriterion{Value: value, Modifier: ModifierEquals}},
		"filter":     findFilter{PerPage: 1},
	}
	if err := c.do(ctx, "findTags", findTagsQuery, vars, &resp); err != nil {
		return nil, err
	}
	return resp.FindTags.Tags, nil
}

// FindPerformers runs a free-text performer search.
func (c *Client) FindPerformers(ctx context.Context, query string) ([]Performer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	var resp struct {
		FindPerformers struct {
			Performers []Performer `json:"performers"`
		} `json:"findPerformers"`
	}
	vars := map[string]any{"filter": findFilter{Q: query, PerPage: -1}}
	if err := c.do(ctx, "findPerformers", findPerformersQuery, vars, &resp); err != nil {
		return nil, err
	}
	return resp.FindPerformers.Performers, nil
}
