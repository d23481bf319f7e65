package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	apperrors "watchboard/internal/errors"
	"watchboard/internal/logger"
	"watchboard/internal/models"
)

// FileStore keeps the watchlist in a JSON file. Every operation re-reads the
// file so that edits made by another process are picked up; writes from
// separate processes can still clobber each other.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore backed by path. The file is created on
// first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// List returns all items in display order.
func (s *FileStore) List(_ context.Context) ([]models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the item for ticker.
func (s *FileStore) Get(_ context.Context, ticker string) (*models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Ticker == ticker {
			found := item.Clone()
			return &found, nil
		}
	}
	return nil, apperrors.ErrTickerNotFound
}

// Add appends item unless its ticker is already present.
func (s *FileStore) Add(_ context.Context, item models.WatchlistItem) (*models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, existing := range items {
		if existing.Ticker == item.Ticker {
			return nil, apperrors.ErrDuplicateTicker
		}
	}

	item = item.Clone()
	item.Tags = models.NormalizeTags(item.Tags)
	item.DisplayOrder = len(items)
	items = append(items, item)
	if err := s.save(items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes ticker if present.
func (s *FileStore) Remove(_ context.Context, ticker string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, item := range items {
		if item.Ticker != ticker {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, s.save(kept)
}

// Update overwrites the editable fields of ticker.
func (s *FileStore) Update(_ context.Context, ticker string, upd models.ItemUpdate) (*models.WatchlistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Ticker != ticker {
			continue
		}
		upd.Apply(&items[i])
		if err := s.save(items); err != nil {
			return nil, err
		}
		updated := items[i].Clone()
		return &updated, nil
	}
	return nil, apperrors.ErrTickerNotFound
}

// Reorder persists tickers as the new display order.
func (s *FileStore) Reorder(_ context.Context, tickers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	current := make([]string, len(items))
	byTicker := make(map[string]models.WatchlistItem, len(items))
	for i, item := range items {
		current[i] = item.Ticker
		byTicker[item.Ticker] = item
	}
	if err := validateOrder(current, tickers); err != nil {
		return err
	}

	reordered := make([]models.WatchlistItem, len(tickers))
	for i, t := range tickers {
		reordered[i] = byTicker[t]
	}
	return s.save(reordered)
}

// ReplaceAll overwrites the file with items.
func (s *FileStore) ReplaceAll(_ context.Context, items []models.WatchlistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.WatchlistItem, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return s.save(dedupe(out))
}

// load reads the file and upgrades older schemas, writing the upgraded form
// back immediately. A missing or unreadable file loads as an empty list.
func (s *FileStore) load() ([]models.WatchlistItem, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Get().Warnw("reading watchlist file failed", "path", s.path, "error", err)
		}
		return []models.WatchlistItem{}, nil
	}

	items, version, err := loadDocument(raw)
	if err != nil {
		logger.Get().Warnw("watchlist file is not valid, treating as empty", "path", s.path, "error", err)
		return []models.WatchlistItem{}, nil
	}

	if version != schemaCurrent {
		if err := s.save(items); err != nil {
			return nil, err
		}
		logger.Get().Infow("watchlist data structure upgraded",
			"path", s.path,
			"from", version.String(),
			"to", schemaCurrent.String(),
			"items", len(items),
		)
	}
	return items, nil
}

// save writes items through a temp file and rename.
func (s *FileStore) save(items []models.WatchlistItem) error {
	renumber(items)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(items); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("encoding watchlist: %w", err))
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".watchlist-*.json")
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("creating temp watchlist file: %w", err))
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("writing watchlist: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("closing watchlist: %w", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(apperrors.ErrInternalServer, fmt.Errorf("replacing watchlist: %w", err))
	}
	return nil
}

// ReadWatchlistFile parses a watchlist file in any historical shape without
// writing the upgraded form back. Unlike FileStore.List it reports a missing
// or malformed file as an error.
func ReadWatchlistFile(path string) ([]models.WatchlistItem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading watchlist file: %w", err)
	}
	items, version, err := loadDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing watchlist file %s: %w", path, err)
	}
	logger.Get().Debugw("watchlist file read", "path", path, "version", version.String(), "items", len(items))
	return items, nil
}

// ImportFile replaces the contents of dst with the items in the watchlist file
// at path. dst is left untouched when the file cannot be read or parsed.
func ImportFile(ctx context.Context, path string, dst WatchlistStore) (int, error) {
	items, err := ReadWatchlistFile(path)
	if err != nil {
		return 0, err
	}
	if err := dst.ReplaceAll(ctx, items); err != nil {
		return 0, fmt.Errorf("importing items: %w", err)
	}
	return len(items), nil
}
