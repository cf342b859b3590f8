// Package store holds the client-side reactive cache: a projection of the
// current user and their character list, kept consistent with the storage
// backend behind one Adapter handle.
//
// The store is an explicit context object constructed once at session start
// and passed to consumers; there is no package-level singleton. It owns its
// adapter for its whole lifetime.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/qiwen5/dressup/internal/client/backend"
	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/session"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/common"
	"github.com/qiwen5/dressup/internal/logging"
	"github.com/qiwen5/dressup/internal/syncx"
)

type Store struct {
	adapter  backend.Adapter
	medium   storage.Medium
	sessions *session.Service
	log      logging.Logger
	keys     *syncx.KeyedMutex

	mu         sync.RWMutex
	userInfo   models.User
	characters []models.Character
}

func New(adapter backend.Adapter, medium storage.Medium, sessions *session.Service, log logging.Logger) *Store {
	return &Store{
		adapter:  adapter,
		medium:   medium,
		sessions: sessions,
		log:      log,
		keys:     syncx.NewKeyedMutex(),
	}
}

// Init resolves the current user and loads their characters. The session
// record is authoritative for identity and points; the backend record, when
// present, fills in avatars and the rest of the profile.
func (s *Store) Init(ctx context.Context) error {
	current, err := s.sessions.Current()
	if err != nil {
		return fmt.Errorf("store init: %w", err)
	}

	s.mu.Lock()
	if current != nil {
		s.userInfo = models.User{
			ID:            current.ID,
			Username:      current.Name,
			Points:        current.Score,
			CurrentAvatar: models.DefaultAvatar,
			CreatedAt:     current.CreatedAt,
		}
	} else {
		s.userInfo = models.User{CurrentAvatar: models.DefaultAvatar}
	}
	id := s.userInfo.ID
	s.mu.Unlock()

	if id != "" {
		u, err := s.adapter.GetUserByID(ctx, id)
		if err != nil {
			s.log.Error(ctx, "loading user from backend", "user_id", id, "error", err)
			return fmt.Errorf("store init: %w", err)
		}
		if u != nil {
			s.mu.Lock()
			s.userInfo = *u
			if s.userInfo.CurrentAvatar == "" {
				s.userInfo.CurrentAvatar = models.DefaultAvatar
			}
			s.mu.Unlock()
		}
	}

	return s.LoadCharacters(ctx)
}

// UserInfo returns a snapshot of the current user projection.
func (s *Store) UserInfo() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.userInfo
	u.Avatars = append([]string(nil), s.userInfo.Avatars...)
	return u
}

// Characters returns a snapshot of the current user's character list.
func (s *Store) Characters() []models.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Character(nil), s.characters...)
}

// LoadUserInfo restores the projection from the medium, or persists the
// current one when nothing is stored yet.
func (s *Store) LoadUserInfo() error {
	raw, ok, err := s.medium.Get(storage.KeyUserInfo)
	if err != nil {
		return fmt.Errorf("loading user info: %w", err)
	}
	if !ok {
		return s.SaveUserInfo()
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return fmt.Errorf("corrupt user info: %w", err)
	}
	s.mu.Lock()
	s.userInfo = u
	s.mu.Unlock()
	return nil
}

// SaveUserInfo persists the projection to the medium.
func (s *Store) SaveUserInfo() error {
	s.mu.RLock()
	raw, err := json.Marshal(s.userInfo)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := s.medium.Set(storage.KeyUserInfo, raw); err != nil {
		return fmt.Errorf("saving user info: %w", err)
	}
	return nil
}

// UpdateUserInfo overlays upd onto the projection and persists it.
func (s *Store) UpdateUserInfo(upd models.UserUpdate) error {
	s.mu.Lock()
	upd.Apply(&s.userInfo)
	s.mu.Unlock()
	return s.SaveUserInfo()
}

// UpdateUserAvatar selects an owned avatar through the backend. Ownership
// violations surface as common.ErrNotOwned; false without an error means the
// user record is absent on the backend.
func (s *Store) UpdateUserAvatar(ctx context.Context, avatarURL string) (bool, error) {
	id := s.currentID()
	u, err := s.adapter.UpdateUserAvatar(ctx, id, avatarURL)
	if err != nil {
		s.log.Error(ctx, "updating avatar", "user_id", id, "error", err)
		return false, err
	}
	if u == nil {
		return false, nil
	}
	s.setUserInfo(*u)
	return true, nil
}

// AddUserAvatar grants a new avatar to the current user.
func (s *Store) AddUserAvatar(ctx context.Context, avatarURL string) (bool, error) {
	id := s.currentID()
	u, err := s.adapter.AddUserAvatar(ctx, id, avatarURL)
	if err != nil {
		s.log.Error(ctx, "adding avatar", "user_id", id, "error", err)
		return false, err
	}
	if u == nil {
		return false, nil
	}
	s.setUserInfo(*u)
	return true, nil
}

// AvailableAvatars lists the avatar catalog.
func (s *Store) AvailableAvatars(ctx context.Context) ([]string, error) {
	avatars, err := s.adapter.GetAvailableAvatars(ctx)
	if err != nil {
		s.log.Error(ctx, "listing avatars", "error", err)
		return nil, err
	}
	return avatars, nil
}

// LoadCharacters replaces the in-memory list with the current user's
// partition from the backend.
func (s *Store) LoadCharacters(ctx context.Context) error {
	id := s.currentID()
	if id == "" {
		s.mu.Lock()
		s.characters = nil
		s.mu.Unlock()
		return nil
	}
	characters, err := s.adapter.GetCharactersByUserID(ctx, id)
	if err != nil {
		s.log.Error(ctx, "loading characters", "user_id", id, "error", err)
		return fmt.Errorf("loading characters: %w", err)
	}
	s.mu.Lock()
	s.characters = characters
	s.mu.Unlock()
	return nil
}

// AddCharacter creates a character for the current user through the backend
// (which assigns id and timestamp) and appends it to the local list. The
// owning partition is always the resolved current user; callers cannot
// create a character for someone else.
func (s *Store) AddCharacter(ctx context.Context, data models.NewCharacter) (*models.Character, error) {
	id := s.currentID()
	if id == "" {
		return nil, fmt.Errorf("no current user: %w", common.ErrValidation)
	}
	data.UserID = id

	c, err := s.adapter.CreateCharacter(ctx, data)
	if err != nil {
		s.log.Error(ctx, "creating character", "user_id", id, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.characters = append(s.characters, *c)
	s.mu.Unlock()
	return c, nil
}

// RemoveCharacter drops the character from the local list and rewrites the
// shared collection. False means the id was not in the local list.
func (s *Store) RemoveCharacter(id string) (bool, error) {
	s.mu.Lock()
	found := false
	for i := range s.characters {
		if s.characters[i].ID == id {
			s.characters = append(s.characters[:i], s.characters[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false, nil
	}
	return true, s.SaveCharacters()
}

// UpdateCharacter applies a partial update to the local list and rewrites
// the shared collection.
func (s *Store) UpdateCharacter(id string, upd models.CharacterUpdate) (bool, error) {
	s.mu.Lock()
	found := false
	for i := range s.characters {
		if s.characters[i].ID == id {
			upd.Apply(&s.characters[i])
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return false, nil
	}
	return true, s.SaveCharacters()
}

// Character returns the character from the local list, or nil.
func (s *Store) Character(id string) *models.Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.characters {
		if s.characters[i].ID == id {
			c := s.characters[i]
			return &c
		}
	}
	return nil
}

// SaveCharacters rewrites the shared character collection with the current
// user's list merged in.
//
// The collection physically holds every user's characters, so the write must
// never clobber another partition: read the full collection, drop only the
// entries owned by the current user, concatenate the remainder with the
// in-memory list, and write the result back. The whole sequence runs under
// the current user's key lock so two saves cannot interleave across the
// read and the write.
func (s *Store) SaveCharacters() error {
	id := s.currentID()

	s.keys.Lock(id)
	defer s.keys.Unlock(id)

	raw, ok, err := s.medium.Get(storage.KeyCharacters)
	if err != nil {
		return fmt.Errorf("reading shared characters: %w", err)
	}

	var all []models.Character
	if ok {
		if err := json.Unmarshal(raw, &all); err != nil {
			return fmt.Errorf("corrupt shared characters: %w", err)
		}
	}

	merged := make([]models.Character, 0, len(all))
	for _, c := range all {
		if c.UserID != id {
			merged = append(merged, c)
		}
	}

	s.mu.RLock()
	merged = append(merged, s.characters...)
	s.mu.RUnlock()

	out, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	if err := s.medium.Set(storage.KeyCharacters, out); err != nil {
		return fmt.Errorf("saving shared characters: %w", err)
	}
	return nil
}

// ClearUserData resets the projection and removes the store's session keys.
// It is a logout: the backend's authoritative collections are not touched.
func (s *Store) ClearUserData() error {
	s.mu.Lock()
	s.userInfo = models.User{CurrentAvatar: models.DefaultAvatar}
	s.characters = nil
	s.mu.Unlock()

	if err := s.medium.Remove(storage.KeyUserInfo); err != nil {
		return fmt.Errorf("clearing user info: %w", err)
	}
	if err := s.medium.Remove(storage.KeyCharacters); err != nil {
		return fmt.Errorf("clearing characters: %w", err)
	}
	return nil
}

func (s *Store) currentID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userInfo.ID
}

func (s *Store) setUserInfo(u models.User) {
	s.mu.Lock()
	s.userInfo = u
	s.mu.Unlock()
}
