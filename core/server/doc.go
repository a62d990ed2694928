// Package server holds the HTTP server configuration.
//
// The serve command starts the fiber application; this package only defines
// the settings it reads: listen port, optional API key and the maximum body
// size accepted for uploads.
package server
