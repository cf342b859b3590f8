package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
)

func TestService_Lifecycle(t *testing.T) {
	s := NewService(storage.NewMemoryMedium())

	u, err := s.Current()
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.False(t, s.LoggedIn())

	want := models.SessionUser{
		ID:        "u1",
		Name:      "ys",
		Score:     150,
		CreatedAt: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
	}
	require.NoError(t, s.SetCurrent(want))
	assert.True(t, s.LoggedIn())

	u, err = s.Current()
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, want, *u)

	require.NoError(t, s.Clear())
	u, err = s.Current()
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestService_CorruptRecord(t *testing.T) {
	m := storage.NewMemoryMedium()
	require.NoError(t, m.Set(storage.KeyCurrentUser, []byte("{not json")))

	s := NewService(m)
	_, err := s.Current()
	assert.Error(t, err)
	assert.False(t, s.LoggedIn())
}
