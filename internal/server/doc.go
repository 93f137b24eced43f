// Package server runs the lingo HTTP server with graceful shutdown.
package server
