package backend

import (
	"context"
	"fmt"
	"io"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/common"
)

// Remote is the hosted-backend variant. It is deliberately unimplemented:
// every method fails with common.ErrBackendUnavailable until the hosted
// store is wired up.
type Remote struct{}

var _ Adapter = (*Remote)(nil)

func NewRemote() *Remote { return &Remote{} }

func (r *Remote) err(op string) error {
	return fmt.Errorf("%s: %w", op, common.ErrBackendUnavailable)
}

func (r *Remote) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return nil, r.err("GetUserByID")
}

func (r *Remote) UpdateUser(ctx context.Context, id string, upd models.UserUpdate) (*models.User, error) {
	return nil, r.err("UpdateUser")
}

func (r *Remote) UpdateUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error) {
	return nil, r.err("UpdateUserAvatar")
}

func (r *Remote) AddUserAvatar(ctx context.Context, userID, avatarURL string) (*models.User, error) {
	return nil, r.err("AddUserAvatar")
}

func (r *Remote) GetAvailableAvatars(ctx context.Context) ([]string, error) {
	return nil, r.err("GetAvailableAvatars")
}

func (r *Remote) GetCharactersByUserID(ctx context.Context, userID string) ([]models.Character, error) {
	return nil, r.err("GetCharactersByUserID")
}

func (r *Remote) CreateCharacter(ctx context.Context, data models.NewCharacter) (*models.Character, error) {
	return nil, r.err("CreateCharacter")
}

func (r *Remote) UpdateCharacter(ctx context.Context, id string, upd models.CharacterUpdate) (*models.Character, error) {
	return nil, r.err("UpdateCharacter")
}

func (r *Remote) DeleteCharacter(ctx context.Context, id string) (bool, error) {
	return false, r.err("DeleteCharacter")
}

func (r *Remote) GetCharacterByID(ctx context.Context, id string) (*models.Character, error) {
	return nil, r.err("GetCharacterByID")
}

func (r *Remote) UploadImage(ctx context.Context, name string, data io.Reader) (string, error) {
	return "", r.err("UploadImage")
}
