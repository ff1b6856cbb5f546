// Package database opens the optional run history database.
//
// storage-probe works without a database. When one is reachable, every
// workflow run is recorded so that results can be compared over time. MySQL
// is the default driver; sqlite is available for local use.
package database
