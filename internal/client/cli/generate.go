package cli

import (
	"context"
	"fmt"

	"github.com/qiwen5/dressup/internal/client/outfitgen"
)

// Generate prompts for an outfit description, sends it to the relay and
// prints the resulting image URL. Successful generations are recorded in the
// history ledger by the relay client.
func (a *App) Generate(ctx context.Context) error {
	prompt, err := getMultiline(a.reader, "Describe the outfit", a.out)
	if err != nil {
		return err
	}
	characterName, err := getSimpleText(a.reader, "Character name (optional)", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Generating...")
	res, err := a.gen.Generate(ctx, outfitgen.Params{
		Prompt:        prompt,
		CharacterName: characterName,
	})
	if err != nil {
		if outfitgen.IsRetryable(err) {
			fmt.Fprintln(a.out, "Generation service unavailable, try again later")
		} else {
			fmt.Fprintf(a.out, "Generation failed: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Done: %s\n", res.ImageURL)
	return nil
}

// Regenerate replays a past generation by its history id.
func (a *App) Regenerate(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "History item id", a.out)
	if err != nil {
		return err
	}

	res, err := a.gen.RegenerateFromHistory(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Regeneration failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Done: %s\n", res.ImageURL)
	return nil
}
