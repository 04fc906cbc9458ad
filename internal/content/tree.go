package content

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxBreadcrumbDepth bounds the breadcrumb walk. Documents are validated for
// acyclicity on write, but a corrupted document read from storage must not
// hang navigation.
const MaxBreadcrumbDepth = 50

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// ItemsIn returns the items directly inside the given folder, preserving the
// insertion order of the flat list. A nil parentID selects root items.
func ItemsIn(items []ContentItem, parentID *string) []ContentItem {
	var out []ContentItem
	for _, item := range items {
		if sameParent(item.ParentID, parentID) {
			out = append(out, item)
		}
	}
	return out
}

// Descendants returns the ids of every item reachable from the given id
// through parent pointers, however deep. The traversal carries a visited set
// so a cyclic document terminates instead of recursing forever.
func Descendants(items []ContentItem, id string) []string {
	children := make(map[string][]string, len(items))
	for _, item := range items {
		if item.ParentID != nil {
			children[*item.ParentID] = append(children[*item.ParentID], item.ID)
		}
	}

	var out []string
	visited := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range children[current] {
			if visited[child] {
				continue
			}
			visited[child] = true
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// Delete removes the item with the given id and, transitively, everything
// beneath it. Deleting a leaf removes exactly that item.
func Delete(items []ContentItem, id string) []ContentItem {
	doomed := map[string]bool{id: true}
	for _, d := range Descendants(items, id) {
		doomed[d] = true
	}
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if !doomed[item.ID] {
			out = append(out, item)
		}
	}
	return out
}

// Clear removes every descendant of the given item but keeps the item itself.
// Used to empty a folder without deleting the folder node.
func Clear(items []ContentItem, id string) []ContentItem {
	doomed := make(map[string]bool)
	for _, d := range Descendants(items, id) {
		doomed[d] = true
	}
	out := make([]ContentItem, 0, len(items))
	for _, item := range items {
		if !doomed[item.ID] {
			out = append(out, item)
		}
	}
	return out
}

// Rename updates the display name of the item with the given id. Whitespace
// is trimmed; an empty name leaves the list unchanged.
func Rename(items []ContentItem, id, name string) []ContentItem {
	name = strings.TrimSpace(name)
	if name == "" {
		return items
	}
	out := make([]ContentItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ID == id {
			out[i].Name = name
		}
	}
	return out
}

// Import grafts an externally supplied content fragment into the tree at the
// given folder. Every imported id is rewritten with a fresh prefix so it
// cannot collide with existing ids, and parent pointers are rewritten through
// the same scheme, except that the fragment's roots (nil parent) are
// reparented under currentFolderID. One prefix covers the whole call, so the
// fragment's internal parent/child links survive the rewrite.
func Import(items []ContentItem, imported []ContentItem, currentFolderID *string) []ContentItem {
	prefix := fmt.Sprintf("imported-%s", uuid.NewString())

	out := make([]ContentItem, 0, len(items)+len(imported))
	out = append(out, items...)
	for _, item := range imported {
		item.ID = fmt.Sprintf("%s-%s", prefix, item.ID)
		if item.ParentID == nil {
			item.ParentID = currentFolderID
		} else {
			mapped := fmt.Sprintf("%s-%s", prefix, *item.ParentID)
			item.ParentID = &mapped
		}
		out = append(out, item)
	}
	return out
}

// Path returns the breadcrumb from a root item down to the given folder,
// walking parent pointers upward. The walk stops at MaxBreadcrumbDepth.
func Path(items []ContentItem, folderID *string) []ContentItem {
	byID := make(map[string]ContentItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	var path []ContentItem
	current := folderID
	for depth := 0; current != nil && depth < MaxBreadcrumbDepth; depth++ {
		item, ok := byID[*current]
		if !ok {
			break
		}
		path = append([]ContentItem{item}, path...)
		current = item.ParentID
	}
	return path
}

// FilterByName returns the items whose name contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterByName(items []ContentItem, query string) []ContentItem {
	if query == "" {
		return items
	}
	query = strings.ToLower(query)
	var out []ContentItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			out = append(out, item)
		}
	}
	return out
}
