// Package cli provides the interactive FitTrack command-line client.
//
// It wires configuration, the local session database, the REST client, the
// session manager and the goal and workout stores, then runs a REPL on top of
// them. On start the previous session is restored and the workout poller is
// started; it runs in the background for as long as someone is signed in.
//
// Key features:
//   - register / login / logout / whoami
//   - goals: list, add, edit, delete
//   - workouts: list, add, edit, delete
//   - refresh of both collections
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
