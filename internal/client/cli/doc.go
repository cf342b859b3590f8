// Package cli provides the interactive dressup command-line client.
//
// It wires configuration, the local storage medium, the backend adapter, the
// reactive store and the generation relay client into an interactive REPL.
// Typical flow: log in as one of the known users, browse and edit characters,
// generate outfit images and inspect the generation history.
//
// Key features:
//   - Login / Logout (session persisted in the local database)
//   - Profile with avatar selection and unlocking
//   - Character list / add / delete
//   - Outfit generation via the relay, with a per-user history ledger
//   - History paging, search, export and import
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
