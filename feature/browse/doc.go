// Package browse exposes path operations over HTTP.
//
// # Routes
//
//   - GET    /paths?uri=s3://bucket/dir        immediate children (pattern= switches to a recursive glob)
//   - GET    /paths/stat?uri=...               existence and file check
//   - GET    /paths/content?uri=...            object bytes
//   - PUT    /paths/content?uri=...&text=true  replace the object with the request body
//   - DELETE /paths?uri=...&contents=true      unlink a file or remove a directory
//   - POST   /paths/copy                       {"src": "...", "dst": "..."}
//
// Errors are JSON {"error": "..."}: 400 for malformed paths, modes or
// patterns, 404 for missing objects, 409 for failed preconditions (unlinking
// a directory, removing a populated directory without contents=true).
package browse
