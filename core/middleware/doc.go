// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//     An empty key disables the check.
//   - rayid: assigns every request a ray id, stored in the fiber locals and
//     echoed in the X-Ray-ID response header for log correlation.
//
// Register rayid first so that even rejected requests carry an id.
package middleware
