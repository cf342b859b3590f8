package cli

import (
	"context"
	"fmt"

	"github.com/qiwen5/dressup/internal/client/models"
)

// getSimpleText and getMultiline are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline

// Login prompts for a user id, looks the user up in the backend and, on
// success, stores the session and loads the user's data into the store.
//
// The backend carries a fixed set of known users; logging in is picking one
// of them, there is no password.
func (a *App) Login(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user id", a.out)
	if err != nil {
		return err
	}

	user, err := a.adapter.GetUserByID(ctx, id)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		return err
	}
	if user == nil {
		fmt.Fprintf(a.out, "Unknown user %q\n", id)
		return nil
	}

	if err := a.sessions.SetCurrent(models.SessionUser{
		ID:        user.ID,
		Name:      user.Username,
		Score:     user.Points,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		return err
	}

	if err := a.store.Init(ctx); err != nil {
		a.log.Error(ctx, "could not load user data", "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", user.Username)
	return nil
}

// Logout clears the locally cached user data and forgets the session.
// Backend collections are left untouched.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.ClearUserData(); err != nil {
		return err
	}
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
