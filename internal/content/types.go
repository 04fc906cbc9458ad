package content

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemType discriminates the kinds of nodes a content tree can hold.
type ItemType string

const (
	TypeFolder ItemType = "folder"
	TypeVideo  ItemType = "video"
	TypePDF    ItemType = "pdf"
)

// Category is a legacy tree node. The category view is a pure projection of
// the content tree; it is persisted for compatibility with older clients but
// never edited directly.
type Category struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Icon     string     `json:"icon"`
	ParentID string     `json:"parentId,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// Video is a legacy flat record tagged with a category id. The Watched flag
// is client-local state and is merged back in on every re-derivation.
type Video struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	VideoURL    string `json:"videoUrl"`
	Duration    string `json:"duration"`
	CategoryID  string `json:"categoryId"`
	Watched     bool   `json:"watched"`
	CreatedAt   string `json:"createdAt"`
}

// ContentItem is a node of the unified content tree, stored as a flat list
// with parent pointers. A nil ParentID marks a root item.
type ContentItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      ItemType `json:"type"`
	ParentID  *string  `json:"parentId"`
	CreatedAt string   `json:"createdAt"`
	// Video fields
	VideoURL    string `json:"videoUrl,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
	// PDF fields
	PDFURL string `json:"pdfUrl,omitempty"`
}

// ZoneData is the persisted document: the authoritative content tree plus
// the two legacy projections derived from it.
type ZoneData struct {
	Categories []Category    `json:"categories"`
	Videos     []Video       `json:"videos"`
	Contents   []ContentItem `json:"contents,omitempty"`
}

// NewID generates a fresh item id of the form "<type>-<uuid>".
func NewID(t ItemType) string {
	return fmt.Sprintf("%s-%s", t, uuid.NewString())
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// NewFolder creates a folder item under the given parent (nil for root).
func NewFolder(name string, parentID *string) ContentItem {
	return ContentItem{
		ID:        NewID(TypeFolder),
		Name:      name,
		Type:      TypeFolder,
		ParentID:  parentID,
		CreatedAt: nowStamp(),
	}
}

// NewVideo creates a video item under the given parent.
func NewVideo(name, videoURL string, parentID *string) ContentItem {
	return ContentItem{
		ID:        NewID(TypeVideo),
		Name:      name,
		Type:      TypeVideo,
		ParentID:  parentID,
		CreatedAt: nowStamp(),
		VideoURL:  videoURL,
	}
}

// NewPDF creates a pdf item under the given parent.
func NewPDF(name, pdfURL string, parentID *string) ContentItem {
	return ContentItem{
		ID:        NewID(TypePDF),
		Name:      name,
		Type:      TypePDF,
		ParentID:  parentID,
		CreatedAt: nowStamp(),
		PDFURL:    pdfURL,
	}
}
