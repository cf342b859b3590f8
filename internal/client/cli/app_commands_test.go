package cli

import (
	"bufio"
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiwen5/dressup/internal/client/backend"
	"github.com/qiwen5/dressup/internal/client/config"
	"github.com/qiwen5/dressup/internal/client/history"
	"github.com/qiwen5/dressup/internal/client/outfitgen"
	"github.com/qiwen5/dressup/internal/client/session"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/client/store"
	"github.com/qiwen5/dressup/internal/logging"
)

// newTestApp wires an App onto an in-memory medium with scripted input.
// The embedded backend seeds its demo users, so "1" and "2" are valid logins.
func newTestApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	ctx := context.Background()
	m := storage.NewMemoryMedium()

	adapter, err := backend.New(ctx, backend.KindEmbedded, m, 0)
	require.NoError(t, err)

	log := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	sessions := session.NewService(m)
	hist := history.NewService(m)
	st := store.New(adapter, m, sessions, log)
	gen := outfitgen.New("http://127.0.0.1:0", time.Second, hist, sessions, log)

	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()

	return &App{
		config:   cfg,
		adapter:  adapter,
		store:    st,
		sessions: sessions,
		history:  hist,
		gen:      gen,
		log:      log,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      &out,
	}, &out
}

func TestApp_LoginProfileLogout(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "1\n")

	require.NoError(t, app.Login(ctx))
	assert.True(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Logged in as ys")

	out.Reset()
	require.NoError(t, app.Profile(ctx))
	assert.Contains(t, out.String(), "ys (1)")
	assert.Contains(t, out.String(), "Points:  150")

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
}

func TestApp_LoginUnknownUser(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "nope\n")

	require.NoError(t, app.Login(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Contains(t, out.String(), "Unknown user")
}

func TestApp_AddAndDeleteCharacter(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "1\nNewbie\nponytail\nblue\n\n")

	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.AddCharacter(ctx))
	assert.Contains(t, out.String(), "Created character Newbie")

	var created string
	for _, c := range app.store.Characters() {
		if c.Name == "Newbie" {
			created = c.ID
		}
	}
	require.NotEmpty(t, created)

	app.reader = bufio.NewReader(strings.NewReader(created + "\n"))
	out.Reset()
	require.NoError(t, app.DeleteCharacter(ctx))
	assert.Contains(t, out.String(), "Deleted")
}

func TestApp_UnlockAndSelectAvatar(t *testing.T) {
	ctx := context.Background()
	// alice owns two avatars; unlock the third, then select it.
	app, out := newTestApp(t, "2\n3\n3\n")

	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.UnlockAvatar(ctx))
	assert.Contains(t, out.String(), "Avatar unlocked")
	require.Len(t, app.store.UserInfo().Avatars, 3)

	out.Reset()
	require.NoError(t, app.SelectAvatar(ctx))
	assert.Contains(t, out.String(), "Avatar updated")
	assert.Equal(t, app.store.UserInfo().Avatars[2], app.store.UserInfo().CurrentAvatar)
}

func TestApp_HistoryCommandsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	app, out := newTestApp(t, "1\n\nsummer\n")

	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.History(ctx))
	assert.Contains(t, out.String(), "0 total")

	out.Reset()
	require.NoError(t, app.SearchHistory(ctx))
	assert.Contains(t, out.String(), "No matches")
}
