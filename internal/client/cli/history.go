package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/qiwen5/dressup/internal/client/history"
	"github.com/qiwen5/dressup/internal/client/models"
)

// History pages through the generation ledger, newest first.
func (a *App) History(ctx context.Context) error {
	current, err := a.sessions.Current()
	if err != nil || current == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return err
	}

	pageStr, err := getSimpleText(a.reader, "Page (empty for 1)", a.out)
	if err != nil {
		return err
	}
	page := 1
	if pageStr != "" {
		if page, err = strconv.Atoi(pageStr); err != nil {
			fmt.Fprintln(a.out, "Invalid page")
			return nil
		}
	}

	p, err := a.history.GetPage(current.ID, page, history.DefaultPageSize)
	if err != nil {
		return err
	}

	a.printItems(p.Items)
	fmt.Fprintf(a.out, "Page %d, %d total", page, p.Total)
	if p.HasMore {
		fmt.Fprint(a.out, ", more available")
	}
	fmt.Fprintln(a.out)
	return nil
}

// SearchHistory finds ledger entries whose prompt or character name contains
// a keyword, case-insensitively.
func (a *App) SearchHistory(ctx context.Context) error {
	current, err := a.sessions.Current()
	if err != nil || current == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return err
	}

	keyword, err := getSimpleText(a.reader, "Keyword", a.out)
	if err != nil {
		return err
	}

	items, err := a.history.Search(current.ID, keyword)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No matches")
		return nil
	}
	a.printItems(items)
	return nil
}

// ExportHistory writes the user's ledger to a JSON file.
func (a *App) ExportHistory(ctx context.Context) error {
	current, err := a.sessions.Current()
	if err != nil || current == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return err
	}

	path, err := getSimpleText(a.reader, "Export file path", a.out)
	if err != nil {
		return err
	}

	data, err := a.history.Export(current.ID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		a.log.Error(ctx, "could not write export file", "error", err)
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

// ImportHistory merges a previously exported JSON file into the ledger.
// The import is all-or-nothing: a malformed file leaves the ledger untouched.
func (a *App) ImportHistory(ctx context.Context) error {
	current, err := a.sessions.Current()
	if err != nil || current == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return err
	}

	path, err := getSimpleText(a.reader, "Import file path", a.out)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		a.log.Error(ctx, "could not read import file", "error", err)
		return err
	}

	if err := a.history.Import(current.ID, data); err != nil {
		fmt.Fprintf(a.out, "Import failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Imported")
	return nil
}

func (a *App) printItems(items []models.HistoryItem) {
	for _, it := range items {
		prompt := it.Prompt
		if len(prompt) > 60 {
			prompt = prompt[:57] + "..."
		}
		fmt.Fprintf(a.out, "%s  %s  %-12s %s\n",
			it.ID, it.CreatedAt.Format("2006-01-02 15:04"), it.CharacterName, prompt)
	}
}
