package content

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidPayload marks a document that does not have the required shape:
// categories and videos must be arrays, contents an optional array.
var ErrInvalidPayload = errors.New("invalid zone payload")

// ErrInvalidTree marks a content tree whose parent pointers dangle or form a
// cycle.
var ErrInvalidTree = errors.New("invalid content tree")

// ParsePayload validates the wire shape of a zone document and decodes it.
// The shape check distinguishes a missing array from an empty one, which a
// plain unmarshal into ZoneData cannot do.
func ParsePayload(raw json.RawMessage) (*ZoneData, error) {
	var probe struct {
		Categories json.RawMessage `json:"categories"`
		Videos     json.RawMessage `json:"videos"`
		Contents   json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if !isJSONArray(probe.Categories) || !isJSONArray(probe.Videos) {
		return nil, ErrInvalidPayload
	}
	if probe.Contents != nil && !isJSONArray(probe.Contents) {
		return nil, ErrInvalidPayload
	}

	var data ZoneData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return &data, nil
}

func isJSONArray(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var probe []json.RawMessage
	return json.Unmarshal(raw, &probe) == nil
}

// ValidateTree rejects content trees with dangling parent references or
// parent-pointer cycles. Accepting either would corrupt every traversal that
// follows, so writes are checked up front instead of bounding walks after
// the fact.
func ValidateTree(items []ContentItem) error {
	byID := make(map[string]*string, len(items))
	for _, item := range items {
		byID[item.ID] = item.ParentID
	}

	for _, item := range items {
		if item.ParentID != nil {
			if _, ok := byID[*item.ParentID]; !ok {
				return fmt.Errorf("%w: item %q references missing parent %q", ErrInvalidTree, item.ID, *item.ParentID)
			}
		}
	}

	// Walk each chain upward; a walk longer than the item count means a cycle.
	for _, item := range items {
		steps := 0
		current := item.ParentID
		for current != nil {
			if steps++; steps > len(items) {
				return fmt.Errorf("%w: cycle through item %q", ErrInvalidTree, item.ID)
			}
			current = byID[*current]
		}
	}
	return nil
}
