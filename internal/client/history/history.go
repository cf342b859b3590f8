// Package history keeps the per-user ledger of generation events: an
// append-only, newest-first log with bounded retention, pagination, search
// and dedup-merging import/export.
//
// Ledgers are addressed by user id and stored together under one medium key
// as a map of user id to item slice. The ledger is written directly by the
// generation client and read by the UI; it does not go through the storage
// backend adapter.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/common"
	"github.com/qiwen5/dressup/internal/syncx"
)

// MaxItems bounds every user's ledger; the oldest entries are evicted first.
const MaxItems = 100

// DefaultPageSize is used when Page is called with a non-positive size.
const DefaultPageSize = 20

type Service struct {
	medium storage.Medium
	keys   *syncx.KeyedMutex
}

func NewService(medium storage.Medium) *Service {
	return &Service{medium: medium, keys: syncx.NewKeyedMutex()}
}

// NewItem carries the caller-supplied fields of an item; the ledger assigns
// the id and timestamp.
type NewItem struct {
	UserID        string
	Prompt        string
	ImageURL      string
	CharacterName string
	Metadata      map[string]any
}

// Page is one slice of a ledger. Pages are 1-indexed; a page past the end is
// empty with HasMore=false.
type Page struct {
	Items   []models.HistoryItem `json:"items"`
	HasMore bool                 `json:"hasMore"`
	Total   int                  `json:"total"`
}

// Stats summarizes a ledger for the profile screen.
type Stats struct {
	Total     int `json:"total"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}

// Add prepends a new item to the user's ledger and evicts the oldest entries
// beyond MaxItems.
func (s *Service) Add(item NewItem) (*models.HistoryItem, error) {
	if item.UserID == "" {
		return nil, fmt.Errorf("history item without user id: %w", common.ErrValidation)
	}

	s.keys.Lock(item.UserID)
	defer s.keys.Unlock(item.UserID)

	entry := models.HistoryItem{
		ID:            newID(),
		UserID:        item.UserID,
		Prompt:        item.Prompt,
		ImageURL:      item.ImageURL,
		CharacterName: item.CharacterName,
		CreatedAt:     time.Now().UTC(),
		Metadata:      item.Metadata,
	}

	ledger, err := s.load(item.UserID)
	if err != nil {
		return nil, err
	}

	ledger = append([]models.HistoryItem{entry}, ledger...)
	if len(ledger) > MaxItems {
		ledger = ledger[:MaxItems]
	}

	if err := s.save(item.UserID, ledger); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the full ledger, newest first.
func (s *Service) List(userID string) ([]models.HistoryItem, error) {
	return s.load(userID)
}

// GetPage returns the 1-indexed page of the given size.
func (s *Service) GetPage(userID string, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	ledger, err := s.load(userID)
	if err != nil {
		return Page{}, err
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(ledger) {
		start = len(ledger)
	}
	if end > len(ledger) {
		end = len(ledger)
	}

	return Page{
		Items:   ledger[start:end],
		HasMore: end < len(ledger),
		Total:   len(ledger),
	}, nil
}

// Delete removes one item by id; false means it was not there.
func (s *Service) Delete(userID, id string) (bool, error) {
	s.keys.Lock(userID)
	defer s.keys.Unlock(userID)

	ledger, err := s.load(userID)
	if err != nil {
		return false, err
	}
	for i := range ledger {
		if ledger[i].ID == id {
			ledger = append(ledger[:i], ledger[i+1:]...)
			return true, s.save(userID, ledger)
		}
	}
	return false, nil
}

// Clear empties the user's ledger.
func (s *Service) Clear(userID string) error {
	s.keys.Lock(userID)
	defer s.keys.Unlock(userID)
	return s.save(userID, []models.HistoryItem{})
}

// ByID returns the item, or (nil, nil) when absent.
func (s *Service) ByID(userID, id string) (*models.HistoryItem, error) {
	ledger, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	for i := range ledger {
		if ledger[i].ID == id {
			item := ledger[i]
			return &item, nil
		}
	}
	return nil, nil
}

// Search returns items whose prompt or character name contains keyword,
// case-insensitively.
func (s *Service) Search(userID, keyword string) ([]models.HistoryItem, error) {
	ledger, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	kw := strings.ToLower(keyword)
	result := make([]models.HistoryItem, 0)
	for _, item := range ledger {
		if strings.Contains(strings.ToLower(item.Prompt), kw) ||
			(item.CharacterName != "" && strings.Contains(strings.ToLower(item.CharacterName), kw)) {
			result = append(result, item)
		}
	}
	return result, nil
}

// GetStats counts ledger entries overall and within the last week and month.
func (s *Service) GetStats(userID string) (Stats, error) {
	ledger, err := s.load(userID)
	if err != nil {
		return Stats{}, err
	}
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	st := Stats{Total: len(ledger)}
	for _, item := range ledger {
		if item.CreatedAt.After(weekAgo) {
			st.ThisWeek++
		}
		if item.CreatedAt.After(monthAgo) {
			st.ThisMonth++
		}
	}
	return st, nil
}

// Export serializes the full ledger verbatim. Retention already bounds its
// size at write time, so nothing is deduped or truncated here.
func (s *Service) Export(userID string) ([]byte, error) {
	ledger, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(ledger, "", "  ")
}

// Import merges serialized items into the user's ledger. The payload must be
// a JSON array of well-formed items, otherwise the existing ledger is left
// completely untouched and common.ErrValidation is returned.
//
// Merge policy: imported items are concatenated before the existing ledger,
// duplicates by id keep the first occurrence (so imported items win), the
// result is sorted by creation time descending and truncated to MaxItems.
func (s *Service) Import(userID string, data []byte) error {
	var imported []models.HistoryItem
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("history import: %w: %v", common.ErrValidation, err)
	}
	for i := range imported {
		if imported[i].ID == "" {
			return fmt.Errorf("history import: item %d has no id: %w", i, common.ErrValidation)
		}
	}

	s.keys.Lock(userID)
	defer s.keys.Unlock(userID)

	existing, err := s.load(userID)
	if err != nil {
		return err
	}

	merged := make([]models.HistoryItem, 0, len(imported)+len(existing))
	merged = append(merged, imported...)
	merged = append(merged, existing...)

	seen := make(map[string]struct{}, len(merged))
	deduped := merged[:0]
	for _, item := range merged {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		deduped = append(deduped, item)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].CreatedAt.After(deduped[j].CreatedAt)
	})

	if len(deduped) > MaxItems {
		deduped = deduped[:MaxItems]
	}

	return s.save(userID, deduped)
}

func (s *Service) load(userID string) ([]models.HistoryItem, error) {
	all, err := s.loadAll()
	if err != nil {
		return nil, err
	}
	return all[userID], nil
}

func (s *Service) save(userID string, ledger []models.HistoryItem) error {
	all, err := s.loadAll()
	if err != nil {
		return err
	}
	all[userID] = ledger

	raw, err := json.Marshal(all)
	if err != nil {
		return err
	}
	if err := s.medium.Set(storage.KeyHistory, raw); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}

func (s *Service) loadAll() (map[string][]models.HistoryItem, error) {
	raw, ok, err := s.medium.Get(storage.KeyHistory)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	all := make(map[string][]models.HistoryItem)
	if !ok {
		return all, nil
	}
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("corrupt history map: %w", err)
	}
	return all, nil
}

// newID builds a time+random composite id, unique within a user's ledger.
func newID() string {
	suffix, err := common.MakeRandHexString(4)
	if err != nil {
		suffix = "00000000"
	}
	return fmt.Sprintf("h_%d_%s", time.Now().UnixMilli(), suffix)
}
