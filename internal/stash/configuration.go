package stash

import "context"

const pluginsConfigurationQuery = `query PluginConfiguration {
  configuration { plugins }
}`

const versionQuery = `query Version {
  version { version }
}`

const libraryPathsQuery = `query LibraryPaths {
  configuration { general { stashes { path excludeVideo excludeImage } } }
}`

// PluginConfiguration returns the host's plugin settings map keyed by plugin ID.
func (c *Client) PluginConfiguration(ctx context.Context) (map[string]any, error) {
	var resp struct {
		Configuration struct {
			Plugins map[string]any `json:"plugins"`
		} `json:"configuration"`
	}
	if err := c.do(ctx, "configuration", pluginsConfigurationQuery, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Configuration.Plugins, nil
}

// Version returns the server's reported release string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var resp struct {
		Version struct {
			Version string `json:"version"`
		} `json:"version"`
	}
	if err := c.do(ctx, "version", versionQuery, nil, &resp); err != nil {
		return "", err
	}
	return resp.Version.Version, nil
}

// LibraryPaths returns every configured library root.
func (c *Client) LibraryPaths(ctx context.Context) ([]LibraryPath, error) {
	var resp struct {
		Configuration struct {
			General struct {
				Stashes []LibraryPath `json:"stashes"`
			} `json:"general"`
		} `json:"configuration"`
	}
	if err := c.do(ctx, "configuration", libraryPathsQuery, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Configuration.General.Stashes, nil
}

// GalleryPaths returns the library roots that are scanned for images.
func GalleryPaths(paths []LibraryPath) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !p.ExcludeImage {
			out = append(out, p.Path)
		}
	}
	return out
}
