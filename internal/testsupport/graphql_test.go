package testsupport

import "testing"

func TestOperationName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"query FindGalleries($f: GalleryFilterType) {", "FindGalleries"},
		{"mutation GalleryUpdate($input: GalleryUpdateInput!)", "GalleryUpdate"},
		{"query PluginConfiguration {\n  configuration { plugins }\n}", "PluginConfiguration"},
		{"{ id }", ""},
	}
	for _, tt := range tests {
		if got := operationName(tt.query); got != tt.want {
			t.Fatalf("operationName(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}
