package cli

import (
	"context"
	"fmt"
	"strconv"
)

// Profile prints the current user's projection together with ledger stats.
func (a *App) Profile(ctx context.Context) error {
	u := a.store.UserInfo()
	if u.ID == "" {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "User:    %s (%s)\n", u.Username, u.ID)
	fmt.Fprintf(a.out, "Points:  %d\n", u.Points)
	fmt.Fprintf(a.out, "Avatar:  %s\n", u.CurrentAvatar)
	fmt.Fprintf(a.out, "Owned avatars:\n")
	for i, av := range u.Avatars {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, av)
	}

	stats, err := a.history.GetStats(u.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Generations: %d total, %d this week, %d this month\n",
		stats.Total, stats.ThisWeek, stats.ThisMonth)
	return nil
}

// Avatars lists the avatars the backend offers for unlocking.
func (a *App) Avatars(ctx context.Context) error {
	avatars, err := a.store.AvailableAvatars(ctx)
	if err != nil {
		a.log.Error(ctx, "could not list avatars", "error", err)
		return err
	}
	for i, av := range avatars {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, av)
	}
	return nil
}

// SelectAvatar switches the current avatar to one of the owned set.
// Selecting an avatar the user does not own is rejected by the backend.
func (a *App) SelectAvatar(ctx context.Context) error {
	u := a.store.UserInfo()
	for i, av := range u.Avatars {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, av)
	}

	choice, err := a.pickFromList("Avatar number", len(u.Avatars))
	if err != nil || choice < 0 {
		return err
	}

	ok, err := a.store.UpdateUserAvatar(ctx, u.Avatars[choice])
	if err != nil {
		a.log.Error(ctx, "avatar update failed", "error", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "User not found")
		return nil
	}
	fmt.Fprintln(a.out, "Avatar updated")
	return nil
}

// UnlockAvatar adds one of the available avatars to the owned set. Unlocking
// an already owned avatar is a no-op.
func (a *App) UnlockAvatar(ctx context.Context) error {
	avatars, err := a.store.AvailableAvatars(ctx)
	if err != nil {
		return err
	}
	for i, av := range avatars {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, av)
	}

	choice, err := a.pickFromList("Avatar number", len(avatars))
	if err != nil || choice < 0 {
		return err
	}

	ok, err := a.store.AddUserAvatar(ctx, avatars[choice])
	if err != nil {
		a.log.Error(ctx, "avatar unlock failed", "error", err)
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "User not found")
		return nil
	}
	fmt.Fprintln(a.out, "Avatar unlocked")
	return nil
}

// pickFromList prompts for a 1-based index into a list of n entries and
// returns the 0-based index, or -1 when the input is empty or out of range.
func (a *App) pickFromList(prompt string, n int) (int, error) {
	s, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return -1, err
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 1 || idx > n {
		fmt.Fprintln(a.out, "Invalid choice")
		return -1, nil
	}
	return idx - 1, nil
}
