// Package mirror exposes tree reconciliation over HTTP.
//
// # HTTP Endpoints
//
//   - GET /reconcile?src=...&dst=... : Reports missing, extra and mismatched keys (supports ?purge=true to plan deletes).
//   - POST /reconcile/apply : Copies missing and mismatched objects to dst, deleting extra ones when purge is set.
package mirror
