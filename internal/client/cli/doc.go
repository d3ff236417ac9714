// Package cli is the interactive WealthWise command-line client.
//
// App ties the services to a small REPL: log in (or sign up), inspect and
// edit portfolios and holdings, compute net worth, browse history and export
// data. A background watcher pings the backend and flips the prompt between
// online and offline; authentication keeps working offline through the demo
// identity, and history falls back to the local snapshot journal.
//
// App.Run blocks until the user exits or input ends.
package cli
