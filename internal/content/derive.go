package content

import "strings"

// iconFor picks a symbolic icon name for a folder by keyword match on its
// name. The first matching keyword wins.
func iconFor(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "lecture"):
		return "Video"
	case strings.Contains(lower, "text"):
		return "BookOpen"
	case strings.Contains(lower, "note"):
		return "FileText"
	case strings.Contains(lower, "class"):
		return "GraduationCap"
	default:
		return "Folder"
	}
}

// DeriveCategories projects the folder skeleton of the content tree onto the
// legacy category shape. Sibling order follows the flat list's insertion
// order. A folder with no folder children gets nil Children so the field is
// omitted from the serialized document.
func DeriveCategories(items []ContentItem) []Category {
	return buildCategoryLevel(items, nil, make(map[string]bool))
}

func buildCategoryLevel(items []ContentItem, parentID *string, visited map[string]bool) []Category {
	var out []Category
	for _, item := range items {
		if item.Type != TypeFolder || !sameParent(item.ParentID, parentID) || visited[item.ID] {
			continue
		}
		visited[item.ID] = true
		cat := Category{
			ID:       item.ID,
			Name:     item.Name,
			Icon:     iconFor(item.Name),
			Children: buildCategoryLevel(items, &item.ID, visited),
		}
		if item.ParentID != nil {
			cat.ParentID = *item.ParentID
		}
		out = append(out, cat)
	}
	return out
}

// DeriveVideos projects the video items of the content tree onto the legacy
// flat video list. The Watched flag does not exist on content items, so it is
// carried over from the previous video list by id; items not present there
// start unwatched. The merge is idempotent: deriving twice from the same tree
// yields identical flags.
func DeriveVideos(items []ContentItem, prev []Video) []Video {
	watched := make(map[string]bool, len(prev))
	for _, v := range prev {
		watched[v.ID] = v.Watched
	}

	var out []Video
	for _, item := range items {
		if item.Type != TypeVideo {
			continue
		}
		thumbnail := item.Thumbnail
		if thumbnail == "" {
			thumbnail = ThumbnailURL(WatchVideoID(item.VideoURL), QualityMaxres)
		}
		duration := item.Duration
		if duration == "" {
			duration = "00:00"
		}
		categoryID := ""
		if item.ParentID != nil {
			categoryID = *item.ParentID
		}
		out = append(out, Video{
			ID:          item.ID,
			Title:       item.Name,
			Description: item.Description,
			Thumbnail:   thumbnail,
			VideoURL:    item.VideoURL,
			Duration:    duration,
			CategoryID:  categoryID,
			Watched:     watched[item.ID],
			CreatedAt:   item.CreatedAt,
		})
	}
	return out
}

// VideosInCategory returns the videos tagged with the given category or any
// category beneath it in the legacy tree. An empty id selects every video.
func VideosInCategory(categories []Category, videos []Video, categoryID string) []Video {
	if categoryID == "" {
		return videos
	}

	wanted := make(map[string]bool)
	var mark func(cats []Category, collecting bool)
	mark = func(cats []Category, collecting bool) {
		for _, cat := range cats {
			in := collecting || cat.ID == categoryID
			if in {
				wanted[cat.ID] = true
			}
			mark(cat.Children, in)
		}
	}
	mark(categories, false)

	var out []Video
	for _, v := range videos {
		if wanted[v.CategoryID] {
			out = append(out, v)
		}
	}
	return out
}

// Sync recomputes both legacy projections from the content tree. prev is the
// previous video list whose watched flags should survive the update.
func Sync(items []ContentItem, prev []Video) ZoneData {
	categories := DeriveCategories(items)
	if categories == nil {
		categories = []Category{}
	}
	videos := DeriveVideos(items, prev)
	if videos == nil {
		videos = []Video{}
	}
	return ZoneData{
		Categories: categories,
		Videos:     videos,
		Contents:   items,
	}
}
