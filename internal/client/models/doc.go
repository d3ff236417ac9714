// Package models holds the client's domain records: portfolios, holdings,
// net-worth snapshots, history points and the authenticated user.
//
// Types here carry validation only. Aggregation lives in package valuation
// and series handling in package history.
package models
