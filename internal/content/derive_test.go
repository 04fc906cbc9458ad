//go:build unit

package content

import (
	"reflect"
	"strings"
	"testing"
)

func TestDeriveCategories_Scenario(t *testing.T) {
	contents := []ContentItem{
		{ID: "f1", Name: "Lecture", Type: TypeFolder, ParentID: nil, CreatedAt: "2024-01-01"},
		{ID: "v1", Name: "Intro", Type: TypeVideo, ParentID: strptr("f1"), VideoURL: "https://youtu.be/ABC123ABCDE", CreatedAt: "2024-01-02"},
	}

	got := DeriveCategories(contents)

	want := []Category{{ID: "f1", Name: "Lecture", Icon: "Video", Children: nil}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want %+v; got %+v", want, got)
	}
}

func TestDeriveCategories_NestedFolders(t *testing.T) {
	contents := []ContentItem{
		{ID: "f1", Name: "Text Book", Type: TypeFolder, ParentID: nil},
		{ID: "f2", Name: "Physics", Type: TypeFolder, ParentID: strptr("f1")},
		{ID: "f3", Name: "Chemistry", Type: TypeFolder, ParentID: strptr("f1")},
		{ID: "v1", Name: "Clip", Type: TypeVideo, ParentID: strptr("f1")},
	}

	got := DeriveCategories(contents)

	if len(got) != 1 {
		t.Fatalf("want one root category; got %d", len(got))
	}
	root := got[0]
	if root.Icon != "BookOpen" {
		t.Errorf("want BookOpen icon for %q; got %s", root.Name, root.Icon)
	}
	if len(root.Children) != 2 {
		t.Fatalf("want 2 children; got %+v", root.Children)
	}
	if root.Children[0].Name != "Physics" || root.Children[1].Name != "Chemistry" {
		t.Errorf("children must preserve insertion order; got %+v", root.Children)
	}
	if root.Children[0].ParentID != "f1" {
		t.Errorf("child should carry its parent id; got %q", root.Children[0].ParentID)
	}
	// Video items never become categories.
	for _, cat := range root.Children {
		if cat.ID == "v1" {
			t.Error("video leaked into the category tree")
		}
	}
}

func TestIconFor(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Lecture", "Video"},
		{"Text Book", "BookOpen"},
		{"Notes", "FileText"},
		{"Class-9th", "GraduationCap"},
		{"Miscellaneous", "Folder"},
		{"LECTURE PDF", "Video"}, // match is case-insensitive, first keyword wins
	}
	for _, tc := range cases {
		if got := iconFor(tc.name); got != tc.want {
			t.Errorf("iconFor(%q) = %s; want %s", tc.name, got, tc.want)
		}
	}
}

func TestDeriveVideos_Scenario(t *testing.T) {
	contents := []ContentItem{
		{ID: "f1", Name: "Lecture", Type: TypeFolder, ParentID: nil},
		{ID: "v1", Name: "Intro", Type: TypeVideo, ParentID: strptr("f1"), VideoURL: "https://youtu.be/ABC123ABCDE", CreatedAt: "2024-01-02"},
	}

	got := DeriveVideos(contents, nil)

	if len(got) != 1 {
		t.Fatalf("want one video; got %d", len(got))
	}
	v := got[0]
	if v.CategoryID != "f1" {
		t.Errorf("want categoryId f1; got %q", v.CategoryID)
	}
	if !strings.Contains(v.Thumbnail, "ABC123ABCDE") {
		t.Errorf("thumbnail should be derived from the video URL; got %q", v.Thumbnail)
	}
	if v.Duration != "00:00" {
		t.Errorf("want default duration 00:00; got %q", v.Duration)
	}
	if v.Watched {
		t.Error("fresh items default to unwatched")
	}
}

func TestDeriveVideos_RootLevelVideo(t *testing.T) {
	contents := []ContentItem{
		{ID: "v1", Name: "Orphan", Type: TypeVideo, ParentID: nil, Thumbnail: "https://example.com/t.jpg"},
	}

	got := DeriveVideos(contents, nil)

	if got[0].CategoryID != "" {
		t.Errorf("root-level video gets an empty categoryId; got %q", got[0].CategoryID)
	}
	if got[0].Thumbnail != "https://example.com/t.jpg" {
		t.Errorf("explicit thumbnail must win; got %q", got[0].Thumbnail)
	}
}

func TestDeriveVideos_WatchedMergeIsIdempotent(t *testing.T) {
	contents := []ContentItem{
		{ID: "v1", Name: "A", Type: TypeVideo, ParentID: nil},
		{ID: "v2", Name: "B", Type: TypeVideo, ParentID: nil},
	}
	prev := []Video{
		{ID: "v1", Watched: true},
		{ID: "v2", Watched: false},
	}

	first := DeriveVideos(contents, prev)
	second := DeriveVideos(contents, first)

	if !first[0].Watched || first[1].Watched {
		t.Fatalf("merge lost watched flags: %+v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-deriving with no edits must be a fixed point:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestVideosInCategory_IncludesChildCategories(t *testing.T) {
	categories := []Category{
		{ID: "c1", Name: "Lecture", Children: []Category{
			{ID: "c1a", Name: "Physics"},
			{ID: "c1b", Name: "Chemistry"},
		}},
		{ID: "c2", Name: "Notes"},
	}
	videos := []Video{
		{ID: "v1", CategoryID: "c1"},
		{ID: "v2", CategoryID: "c1a"},
		{ID: "v3", CategoryID: "c2"},
		{ID: "v4", CategoryID: ""},
	}

	got := VideosInCategory(categories, videos, "c1")
	if len(got) != 2 || got[0].ID != "v1" || got[1].ID != "v2" {
		t.Errorf("want v1 and v2 (child category included); got %+v", got)
	}

	got = VideosInCategory(categories, videos, "c1b")
	if len(got) != 0 {
		t.Errorf("want no videos for an empty subcategory; got %+v", got)
	}

	if got := VideosInCategory(categories, videos, ""); len(got) != len(videos) {
		t.Errorf("empty id selects every video; got %d", len(got))
	}
}

func TestSync_ProducesBothProjections(t *testing.T) {
	doc := Sync(testTree(), nil)

	if len(doc.Categories) == 0 || len(doc.Videos) == 0 {
		t.Fatalf("expected non-empty projections; got %+v", doc)
	}
	if len(doc.Contents) != len(testTree()) {
		t.Errorf("contents must pass through unchanged")
	}
}

func TestSync_EmptyTreeYieldsEmptyArrays(t *testing.T) {
	doc := Sync(nil, nil)

	// Serialized documents need [] rather than null for the legacy arrays,
	// or the write validation on the server rejects them.
	if doc.Categories == nil || doc.Videos == nil {
		t.Errorf("projections of an empty tree must be empty, not nil: %+v", doc)
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	if err := ValidateTree(doc.Contents); err != nil {
		t.Fatalf("default document must validate: %v", err)
	}
	if len(doc.Categories) == 0 || len(doc.Videos) == 0 || len(doc.Contents) == 0 {
		t.Errorf("default document should not be empty: %d/%d/%d",
			len(doc.Categories), len(doc.Videos), len(doc.Contents))
	}
}
