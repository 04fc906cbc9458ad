package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"edudash/internal/content"
	"edudash/internal/logger"

	"github.com/microcosm-cc/bluemonday"
)

// ZoneStore is the database-backed document store. Nil-able: the server can
// run without a database and persist only to the file mirror.
type ZoneStore interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Upsert(ctx context.Context, key string, doc json.RawMessage) error
}

// FileMirror is the always-on local copy of the zone document.
type FileMirror interface {
	Read() (json.RawMessage, error)
	Write(doc json.RawMessage) error
}

// DocumentCache keeps recently read documents off the database hot path.
// Saves refresh the cached document through Set, so the interface needs no
// invalidation method.
type DocumentCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// ZoneService implements the read/write contract of the zone document:
// read-through with file fallback, and best-effort dual-write on save.
type ZoneService struct {
	store      ZoneStore
	file       FileMirror
	cache      DocumentCache
	defaultKey string
	sanitizer  *bluemonday.Policy
	log        logger.Logger
}

// NewZoneService creates a ZoneService. store and cache may be nil; file must
// not be.
func NewZoneService(store ZoneStore, file FileMirror, cache DocumentCache, defaultKey string, log logger.Logger) *ZoneService {
	if defaultKey == "" {
		defaultKey = "default"
	}
	return &ZoneService{
		store:      store,
		file:       file,
		cache:      cache,
		defaultKey: defaultKey,
		// Strict policy: content names and descriptions are plain text;
		// any markup in an imported document is stripped before persisting.
		sanitizer: bluemonday.StrictPolicy(),
		log:       log,
	}
}

// ResolveKey maps a caller-supplied zone key onto the effective one, falling
// back to the configured default for blank input.
func (s *ZoneService) ResolveKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.defaultKey
	}
	return key
}

// Load reads the document stored under key. Reads fail open: a database
// error falls through to the file mirror, and a missing document yields nil
// rather than an error.
func (s *ZoneService) Load(ctx context.Context, key string) json.RawMessage {
	key = s.ResolveKey(key)

	if s.cache != nil {
		if raw, err := s.cache.Get(key); err == nil && raw != nil {
			return json.RawMessage(raw)
		}
	}

	if s.store != nil {
		raw, err := s.store.Get(ctx, key)
		if err != nil {
			s.log.Error(err, "Zone read from database failed, falling back to local file")
		} else if raw != nil {
			if s.cache != nil {
				if err := s.cache.Set(key, []byte(raw)); err != nil {
					s.log.Error(err, "Failed to cache zone document")
				}
			}
			return raw
		}
	}

	raw, err := s.file.Read()
	if err != nil {
		s.log.Error(err, "Zone read from local file failed")
		return nil
	}
	return raw
}

// Save validates, sanitizes, and persists a zone document under key.
//
// The write is a best-effort dual-write: a database failure is logged and
// swallowed, the file mirror is always written, and the save as a whole
// fails only when the file write fails while no database is configured.
func (s *ZoneService) Save(ctx context.Context, key string, raw json.RawMessage) error {
	key = s.ResolveKey(key)

	doc, err := content.ParsePayload(raw)
	if err != nil {
		return err
	}
	if err := content.ValidateTree(doc.Contents); err != nil {
		return err
	}

	s.scrub(doc)
	clean, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize zone document: %w", err)
	}

	if s.store != nil {
		if err := s.store.Upsert(ctx, key, clean); err != nil {
			s.log.Error(err, "Zone write to database failed")
		}
	}

	if err := s.file.Write(clean); err != nil {
		s.log.Error(err, "Zone write to local file failed")
		if s.store == nil {
			return fmt.Errorf("failed to save zone locally with no database configured: %w", err)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(key, clean); err != nil {
			s.log.Error(err, "Failed to refresh cached zone document")
		}
	}
	return nil
}

// scrub strips markup from every user-entered text field. Sanitizing escapes
// entities, so the text is unescaped afterwards to keep names like
// "Physics & Chemistry" intact.
func (s *ZoneService) scrub(doc *content.ZoneData) {
	clean := func(v string) string {
		return html.UnescapeString(s.sanitizer.Sanitize(v))
	}

	var scrubCategories func(cats []content.Category)
	scrubCategories = func(cats []content.Category) {
		for i := range cats {
			cats[i].Name = clean(cats[i].Name)
			scrubCategories(cats[i].Children)
		}
	}
	scrubCategories(doc.Categories)

	for i := range doc.Videos {
		doc.Videos[i].Title = clean(doc.Videos[i].Title)
		doc.Videos[i].Description = clean(doc.Videos[i].Description)
	}
	for i := range doc.Contents {
		doc.Contents[i].Name = clean(doc.Contents[i].Name)
		doc.Contents[i].Description = clean(doc.Contents[i].Description)
	}
}
