package backend

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
)

// Adapter is the capability contract every storage backend implements.
//
// Entity lookups model "not found" as an absent result: a nil pointer with a
// nil error. Ownership violations are reported as common.ErrNotOwned.
// Methods must not be called concurrently for the same entity key without
// external serialization; implementations here serialize internally.
type Adapter interface {
	// GetUserByID returns the user, or (nil, nil) when absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// UpdateUser overlays the non-nil fields of upd onto the user and
	// returns the result, or (nil, nil) when the user is absent.
	UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error)

	// UpdateUserAvatar selects avatarURL as the user's current avatar.
	// Fails with common.ErrNotOwned when the user does not own it;
	// (nil, nil) when the user is absent.
	UpdateUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error)

	// AddUserAvatar grants avatarURL to the user. Idempotent: granting an
	// already-owned avatar returns the unchanged user without duplicating
	// the owned set.
	AddUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error)

	// GetAvailableAvatars lists every avatar url the platform offers.
	GetAvailableAvatars(ctx context.Context) ([]string, error)

	// GetCharactersByUserID lists the characters owned by userID.
	GetCharactersByUserID(ctx context.Context, userID string) ([]models.Character, error)

	// CreateCharacter stores a new character. The id and creation time are
	// assigned by the backend; a missing image url is substituted with a
	// placeholder reference.
	CreateCharacter(ctx context.Context, data models.NewCharacter) (*models.Character, error)

	// UpdateCharacter overlays the non-nil fields of upd onto the
	// character, or returns (nil, nil) when absent.
	UpdateCharacter(ctx context.Context, id string, upd models.CharacterUpdate) (*models.Character, error)

	// DeleteCharacter removes the character. False means nothing to
	// delete, never an error.
	DeleteCharacter(ctx context.Context, id string) (bool, error)

	// GetCharacterByID returns the character, or (nil, nil) when absent.
	GetCharacterByID(ctx context.Context, id string) (*models.Character, error)

	// UploadImage stores an image and returns its url. The embedded
	// variant fabricates the reference without persisting bytes.
	UploadImage(ctx context.Context, name string, data io.Reader) (string, error)
}

// Kind selects the backend variant. It is resolved once at construction and
// is not hot-swappable at runtime.
type Kind string

const (
	KindEmbedded Kind = "embedded"
	KindRemote   Kind = "remote"
)

// ParseKind maps a configuration string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindEmbedded, KindRemote:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unsupported backend kind: %q", s)
	}
}

// New constructs the adapter for kind. The medium and latency only apply to
// the embedded variant.
func New(ctx context.Context, kind Kind, medium storage.Medium, latency time.Duration) (Adapter, error) {
	switch kind {
	case KindEmbedded:
		return NewEmbedded(ctx, medium, latency)
	case KindRemote:
		return NewRemote(), nil
	default:
		return nil, fmt.Errorf("unsupported backend kind: %q", kind)
	}
}
