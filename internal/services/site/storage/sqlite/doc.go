// Package sqlite provides the site persistence adapter backed by SQLite.
//
// Only visitor-submitted telemetry lives here. It can be dropped at any
// time without affecting what the site serves.
package sqlite
