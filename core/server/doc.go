// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structure for server settings.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key and whether the
// configured reconciliation job runs once when the server starts.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings.
package server
