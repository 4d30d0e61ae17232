// Package cli provides the notesync command-line client.
//
// It wires configuration, local storage and the sync engine behind a set of
// cobra commands. Configuration comes from flags, NOTESYNC_ environment
// variables and an optional YAML file, in that order of precedence.
//
// Commands:
//   - login / register / logout for the session lifecycle
//   - note add / list / show / edit / rm for local editing
//   - sync, one-shot or with --loop for periodic background sync
//   - status, prune, version
//
// Entry point is Execute(ctx), which blocks until the command finishes or
// the context is cancelled.
package cli
