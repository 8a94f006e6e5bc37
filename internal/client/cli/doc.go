// Package cli provides the interactive FuelTrack command-line client.
//
// It wires configuration, the local session store, the API client, and an
// interactive REPL. Typical flow: restore a persisted session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Login / Register / Logout with a persisted session
//   - Record fill-ups manually or from a scanned receipt photo
//   - Manage vehicles, including the default-vehicle flag
//   - Spending and efficiency statistics
//   - CSV / JSON export
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
