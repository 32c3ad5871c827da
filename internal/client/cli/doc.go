// Package cli implements the interactive command loop of the busticket
// client: account registration and login, profile management, and control
// over the account's server-side sessions. All state handling is delegated
// to the session manager; this package only parses commands and renders
// results.
package cli
