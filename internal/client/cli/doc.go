// Package cli provides the interactive Coin Bank command-line client.
//
// It wires configuration, local storage, the bank API client, the session
// and polling services, and an interactive REPL. Typical flow: restore the
// previous session or prompt for credentials, keep the balance fresh in the
// background, and execute user commands.
//
// Key features:
//   - Login / Register / Logout, with saved accounts for one-step re-login
//   - Transfers, bill creation and payment
//   - Card code display, copy and reset
//   - Recent transaction history
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
