package inference_test

import (
	"regexp"
	"slices"
	"testing"

	"galleryorganizer/internal/inference"
)

func TestTitleFromSources(t *testing.T) {
	tests := []struct {
		name   string
		folder string
		files  []string
		want   string
		ok     bool
	}{
		{"folder wins", "/lib/photos/Gallery Name", []string{"other.zip"}, "Gallery Name", true},
		{"folder trailing slash", "/lib/photos/Gallery Name/", nil, "Gallery Name", true},
		{"windows folder", `D:\lib\[写真]Set 01`, nil, "[写真]Set 01", true},
		{"file extension stripped", "", []string{"set.v2.zip"}, "set.v2", true},
		{"file without extension", "", []string{"archive"}, "archive", true},
		{"file only extension", "", []string{".zip"}, "", false},
		{"nothing attached", "", nil, "", false},
		{"blank folder falls back", "  ", []string{"a.cbz"}, "a", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inference.TitleFromSources(tt.folder, tt.files)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("TitleFromSources(%q, %v) = %q, %v; want %q, %v", tt.folder, tt.files, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTitleFromSourcesNormalizesToNFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	got, ok := inference.TitleFromSources("/lib/"+decomposed, nil)
	if !ok || got != "Caf\u00e9" {
		t.Fatalf("expected NFC title, got %q (%v)", got, ok)
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		title string
		want  string
		ok    bool
	}{
		{"2023.05.01_extra", "2023-05-01", true},
		{"[写真]Set 2021.12.31 and 2022.01.01", "2021-12-31", true},
		{"2023-05-01", "", false},
		{"23.05.01", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := inference.ExtractDate(tt.title)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ExtractDate(%q) = %q, %v; want %q, %v", tt.title, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPerformerCandidates(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"[Cosplay]Outdoor_Alice, Bob ", []string{"Alice", "Bob"}},
		{"Alice", []string{"Alice"}},
		{"[Cosplay]Outdoor_", nil},
		{"a_b_ , Carol,,", []string{"Carol"}},
	}
	for _, tt := range tests {
		got := inference.PerformerCandidates(tt.title)
		if !slices.Equal(got, tt.want) {
			t.Fatalf("PerformerCandidates(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestMatchesNameIsCaseSensitive(t *testing.T) {
	if !inference.MatchesName("Alice", "Alice", nil) {
		t.Fatal("expected canonical name match")
	}
	if !inference.MatchesName("Ali", "Alice", []string{"Ali"}) {
		t.Fatal("expected alias match")
	}
	if inference.MatchesName("alice", "Alice", []string{"ALICE"}) {
		t.Fatal("expected case-sensitive comparison")
	}
}

func TestTagLabels(t *testing.T) {
	tests := []struct {
		title string
		want  []string
		ok    bool
	}{
		{"[StudioX]Name1, Name2_TagA_", []string{"StudioX", "Name1", "Name2", "TagA"}, true},
		{"[Cosplay]Outdoor, Night_Uniform_Alice", []string{"Cosplay", "Outdoor", "Night", "Uniform"}, true},
		{"[Cosplay]Alice", []string{"Cosplay"}, true},
		{"[Cosplay]", []string{"Cosplay"}, true},
		{"Prefix [Cat]a_b", []string{"Cat", "Prefix [Cat]a"}, true},
		{"[A]x[B]_y", []string{"A", "x[B]"}, true},
		{"No brackets_here_Alice", nil, false},
	}
	for _, tt := range tests {
		got, ok := inference.TagLabels(tt.title)
		if ok != tt.ok || !slices.Equal(got, tt.want) {
			t.Fatalf("TagLabels(%q) = %v, %v; want %v, %v", tt.title, got, ok, tt.want, tt.ok)
		}
	}
}

func TestExclusionPattern(t *testing.T) {
	pattern := inference.ExclusionPattern([]string{"杂图", "写真"})
	if pattern != `^\[(杂图|写真)\]` {
		t.Fatalf("unexpected pattern %q", pattern)
	}
	re := regexp.MustCompile(pattern)
	if !re.MatchString("[写真]XIUREN Vol.045") || re.MatchString("[Cosplay]a_b") {
		t.Fatal("exclusion pattern matched the wrong titles")
	}
	if inference.ExclusionPattern(nil) != "" {
		t.Fatal("expected empty pattern without categories")
	}
}

func TestPlatformCodeAndURL(t *testing.T) {
	code, ok := inference.PlatformCode("[写真]JVID_AB123_")
	if !ok || code != "AB123" {
		t.Fatalf("unexpected code %q (%v)", code, ok)
	}
	if url := inference.PlatformURL("https://www.jvid.com/v/%s", code); url != "https://www.jvid.com/v/AB123" {
		t.Fatalf("unexpected url %q", url)
	}
	if _, ok := inference.PlatformCode("[写真]JVID AB123"); ok {
		t.Fatal("expected no code without underscores")
	}
	for _, title := range []string{"[写真]JVID_AB-123_", "[写真]JVID_AB-12_Alice_", "[写真]JVID__Alice_", "[写真]JVID_AB123"} {
		if code, ok := inference.PlatformCode(title); ok {
			t.Fatalf("PlatformCode(%q) = %q, want no code", title, code)
		}
	}
	if code, ok := inference.PlatformCode("[写真]JVID_AB123_Alice_"); !ok || code != "AB123" {
		t.Fatalf("expected first underscore pair, got %q (%v)", code, ok)
	}
	if !regexp.MustCompile(inference.PrefixPattern("[写真]JVID")).MatchString("[写真]JVID_AB123_") {
		t.Fatal("expected prefix pattern to match")
	}
}

func TestSeriesCodeAndStudioPattern(t *testing.T) {
	code, ok := inference.SeriesCode("[写真]XIUREN Vol.045")
	if !ok || code != "Vol.045" {
		t.Fatalf("unexpected code %q (%v)", code, ok)
	}
	code, ok = inference.SeriesCode("MyGirl No.312 Uncensored")
	if !ok || code != "No.312" {
		t.Fatalf("unexpected code %q (%v)", code, ok)
	}
	if _, ok := inference.SeriesCode("XIUREN special"); ok {
		t.Fatal("expected no code")
	}

	re := regexp.MustCompile(inference.StudioPattern([]string{"XIUREN", "MyGirl"}))
	for _, title := range []string{"[写真]XIUREN Vol.045", "MyGirl No.312", "[写真] XIUREN Vol.1"} {
		if !re.MatchString(title) {
			t.Fatalf("expected studio pattern to match %q", title)
		}
	}
	if re.MatchString("[写真]Other XIUREN Vol.1") {
		t.Fatal("expected brand to be required at the start")
	}
	if re.MatchString("[写真] xiuren Vol.1") || re.MatchString("mygirl No.1") {
		t.Fatal("expected brand matching to respect case")
	}
}
