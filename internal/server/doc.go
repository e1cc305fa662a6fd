// Package server runs the application's HTTP transport.
//
// It owns the http.Server lifecycle: startup, signal handling and graceful
// shutdown.
package server
