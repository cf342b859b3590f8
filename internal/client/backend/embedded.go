package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/common"
	"github.com/qiwen5/dressup/internal/syncx"
)

// Embedded is the in-process Adapter. It holds two ordered collections in
// memory and mirrors a full snapshot of them to the persisted medium after
// every mutation. The in-memory collections are a cache of the medium and
// are owned exclusively by this instance.
//
// Mutations for the same entity key are serialized with a keyed mutex so
// that two read-modify-write sequences racing across the medium round-trip
// cannot lose an update.
type Embedded struct {
	medium  storage.Medium
	latency time.Duration

	keys *syncx.KeyedMutex

	mu         sync.RWMutex
	users      []models.User
	characters []models.Character

	idMu   sync.Mutex
	lastID int64
}

var _ Adapter = (*Embedded)(nil)

// NewEmbedded seeds the collections from the medium if present, otherwise
// from the built-in seed set, and persists the result immediately.
// latency is the base unit of the simulated call delay; zero disables it.
func NewEmbedded(ctx context.Context, medium storage.Medium, latency time.Duration) (*Embedded, error) {
	b := &Embedded{
		medium:  medium,
		latency: latency,
		keys:    syncx.NewKeyedMutex(),
	}

	if err := b.bootstrap(); err != nil {
		return nil, fmt.Errorf("backend bootstrap: %w", err)
	}
	return b, nil
}

func (b *Embedded) bootstrap() error {
	raw, ok, err := b.medium.Get(storage.KeyBackendUsers)
	if err != nil {
		return err
	}
	if ok {
		if err := json.Unmarshal(raw, &b.users); err != nil {
			return fmt.Errorf("corrupt users collection: %w", err)
		}
	}
	if len(b.users) == 0 {
		b.users = seedUsers()
	}

	raw, ok, err = b.medium.Get(storage.KeyBackendCharacters)
	if err != nil {
		return err
	}
	if ok {
		if err := json.Unmarshal(raw, &b.characters); err != nil {
			return fmt.Errorf("corrupt characters collection: %w", err)
		}
	}
	if len(b.characters) == 0 {
		b.characters = seedCharacters()
	}

	return b.persist()
}

// persist writes both collections back as whole snapshots. Callers must hold
// at least a read view that is consistent with what is written; mutating
// methods call it while holding b.mu.
func (b *Embedded) persist() error {
	users, err := json.Marshal(b.users)
	if err != nil {
		return err
	}
	characters, err := json.Marshal(b.characters)
	if err != nil {
		return err
	}
	if err := b.medium.Set(storage.KeyBackendUsers, users); err != nil {
		return err
	}
	return b.medium.Set(storage.KeyBackendCharacters, characters)
}

// delay simulates the latency of a remote call. n scales the configured base
// unit; the sleep aborts early when ctx is done.
func (b *Embedded) delay(ctx context.Context, n int) error {
	if b.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(time.Duration(n) * b.latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// nextID returns a nanosecond-timestamp id, bumped when two calls land on
// the same tick so ids stay collision-free within the process.
func (b *Embedded) nextID() string {
	b.idMu.Lock()
	defer b.idMu.Unlock()
	id := time.Now().UnixNano()
	if id <= b.lastID {
		id = b.lastID + 1
	}
	b.lastID = id
	return fmt.Sprintf("%d", id)
}

func (b *Embedded) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := b.delay(ctx, 1); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.users {
		if b.users[i].ID == id {
			u := b.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (b *Embedded) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	if err := b.delay(ctx, 2); err != nil {
		return nil, err
	}
	b.keys.Lock(id)
	defer b.keys.Unlock(id)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID != id {
			continue
		}
		upd.Apply(&b.users[i])
		if err := b.persist(); err != nil {
			return nil, err
		}
		u := b.users[i]
		return &u, nil
	}
	return nil, nil
}

func (b *Embedded) UpdateUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error) {
	if err := b.delay(ctx, 1); err != nil {
		return nil, err
	}
	b.keys.Lock(userID)
	defer b.keys.Unlock(userID)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID != userID {
			continue
		}
		if !b.users[i].OwnsAvatar(avatarURL) {
			return nil, fmt.Errorf("avatar %s: %w", avatarURL, common.ErrNotOwned)
		}
		b.users[i].CurrentAvatar = avatarURL
		if err := b.persist(); err != nil {
			return nil, err
		}
		u := b.users[i]
		return &u, nil
	}
	return nil, nil
}

func (b *Embedded) AddUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error) {
	if err := b.delay(ctx, 2); err != nil {
		return nil, err
	}
	b.keys.Lock(userID)
	defer b.keys.Unlock(userID)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].ID != userID {
			continue
		}
		if !b.users[i].OwnsAvatar(avatarURL) {
			b.users[i].Avatars = append(b.users[i].Avatars, avatarURL)
			if err := b.persist(); err != nil {
				return nil, err
			}
		}
		u := b.users[i]
		return &u, nil
	}
	return nil, nil
}

func (b *Embedded) GetAvailableAvatars(ctx context.Context) ([]string, error) {
	if err := b.delay(ctx, 1); err != nil {
		return nil, err
	}
	return append([]string(nil), availableAvatars...), nil
}

func (b *Embedded) GetCharactersByUserID(ctx context.Context, userID string) ([]models.Character, error) {
	if err := b.delay(ctx, 2); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]models.Character, 0)
	for _, c := range b.characters {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (b *Embedded) CreateCharacter(ctx context.Context, data models.NewCharacter) (*models.Character, error) {
	if err := b.delay(ctx, 3); err != nil {
		return nil, err
	}
	b.keys.Lock(data.UserID)
	defer b.keys.Unlock(data.UserID)

	c := models.Character{
		ID:        b.nextID(),
		Name:      data.Name,
		ImageURL:  data.ImageURL,
		HairStyle: data.HairStyle,
		HairColor: data.HairColor,
		CreatedAt: time.Now().UTC(),
		UserID:    data.UserID,
	}
	if c.ImageURL == "" {
		c.ImageURL = placeholderImage()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.characters = append(b.characters, c)
	if err := b.persist(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (b *Embedded) UpdateCharacter(ctx context.Context, id string, upd models.CharacterUpdate) (*models.Character, error) {
	if err := b.delay(ctx, 2); err != nil {
		return nil, err
	}
	b.keys.Lock(id)
	defer b.keys.Unlock(id)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.characters {
		if b.characters[i].ID != id {
			continue
		}
		upd.Apply(&b.characters[i])
		if err := b.persist(); err != nil {
			return nil, err
		}
		c := b.characters[i]
		return &c, nil
	}
	return nil, nil
}

func (b *Embedded) DeleteCharacter(ctx context.Context, id string) (bool, error) {
	if err := b.delay(ctx, 2); err != nil {
		return false, err
	}
	b.keys.Lock(id)
	defer b.keys.Unlock(id)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.characters {
		if b.characters[i].ID != id {
			continue
		}
		b.characters = append(b.characters[:i], b.characters[i+1:]...)
		if err := b.persist(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (b *Embedded) GetCharacterByID(ctx context.Context, id string) (*models.Character, error) {
	if err := b.delay(ctx, 1); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.characters {
		if b.characters[i].ID == id {
			c := b.characters[i]
			return &c, nil
		}
	}
	return nil, nil
}

// UploadImage fabricates an image reference after a longer simulated delay.
// The bytes are drained but never persisted.
func (b *Embedded) UploadImage(ctx context.Context, name string, data io.Reader) (string, error) {
	if err := b.delay(ctx, 10); err != nil {
		return "", err
	}
	if data != nil {
		if _, err := io.Copy(io.Discard, data); err != nil {
			return "", fmt.Errorf("reading upload: %w", err)
		}
	}
	ext := path.Ext(name)
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("https://cdn.dressup.app/uploads/%s%s", uuid.NewString(), ext), nil
}
