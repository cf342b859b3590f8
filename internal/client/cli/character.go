package cli

import (
	"context"
	"fmt"

	"github.com/qiwen5/dressup/internal/client/models"
)

// Characters prints the current user's characters from the store projection.
func (a *App) Characters(ctx context.Context) error {
	chars := a.store.Characters()
	if len(chars) == 0 {
		fmt.Fprintln(a.out, "No characters yet")
		return nil
	}
	for _, c := range chars {
		fmt.Fprintf(a.out, "%s  %-12s %s/%s  %s\n", c.ID, c.Name, c.HairStyle, c.HairColor, c.ImageURL)
	}
	return nil
}

// AddCharacter prompts for the character fields and creates it through the
// store. The backend assigns the id and falls back to a placeholder image
// when none is given.
func (a *App) AddCharacter(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Character name", a.out)
	if err != nil {
		return err
	}
	hairStyle, err := getSimpleText(a.reader, "Hair style", a.out)
	if err != nil {
		return err
	}
	hairColor, err := getSimpleText(a.reader, "Hair color", a.out)
	if err != nil {
		return err
	}
	imageURL, err := getSimpleText(a.reader, "Image URL (empty for placeholder)", a.out)
	if err != nil {
		return err
	}

	created, err := a.store.AddCharacter(ctx, models.NewCharacter{
		Name:      name,
		HairStyle: hairStyle,
		HairColor: hairColor,
		ImageURL:  imageURL,
	})
	if err != nil {
		a.log.Error(ctx, "could not create character", "error", err)
		return err
	}

	fmt.Fprintf(a.out, "Created character %s (%s)\n", created.Name, created.ID)
	return nil
}

// DeleteCharacter removes a character by id.
func (a *App) DeleteCharacter(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Character id", a.out)
	if err != nil {
		return err
	}

	ok, err := a.store.RemoveCharacter(id)
	if err != nil {
		a.log.Error(ctx, "could not delete character", "error", err)
		return err
	}
	if !ok {
		fmt.Fprintf(a.out, "No character with id %q\n", id)
		return nil
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
