package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Avatars(ctx context.Context) error
	SelectAvatar(ctx context.Context) error
	UnlockAvatar(ctx context.Context) error
	Characters(ctx context.Context) error
	AddCharacter(ctx context.Context) error
	DeleteCharacter(ctx context.Context) error
	Generate(ctx context.Context) error
	Regenerate(ctx context.Context) error
	History(ctx context.Context) error
	SearchHistory(ctx context.Context) error
	ExportHistory(ctx context.Context) error
	ImportHistory(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the dressup CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — pick a user and restore their data
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - profile        — show the current user's profile
//	  - avatars        — list avatars available for unlocking
//	  - selectavatar   — switch to one of the owned avatars
//	  - unlockavatar   — add an avatar to the owned set
//	  - (l)ist         — list characters
//	  - addchar        — create a character
//	  - delchar        — delete a character
//	  - generate       — generate an outfit image
//	  - regen          — replay a past generation by history id
//	  - history        — page through the generation history
//	  - search         — search the history by keyword
//	  - export         — export the history to a JSON file
//	  - import         — import a history JSON file
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dressup %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, avatars, selectavatar, unlockavatar, (l)ist, addchar, delchar, generate, regen, history, search, export, import, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "avatars":
			_ = a.Avatars(ctx)

		case "selectavatar":
			_ = a.SelectAvatar(ctx)

		case "unlockavatar":
			_ = a.UnlockAvatar(ctx)

		case "l", "list":
			_ = a.Characters(ctx)

		case "addchar":
			_ = a.AddCharacter(ctx)

		case "delchar":
			_ = a.DeleteCharacter(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "regen":
			_ = a.Regenerate(ctx)

		case "history":
			_ = a.History(ctx)

		case "search":
			_ = a.SearchHistory(ctx)

		case "export":
			_ = a.ExportHistory(ctx)

		case "import":
			_ = a.ImportHistory(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
