// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the
// handler.
//
// # Components
//
//   - clientgate: Requires the X-Client-Id header, resolves or generates the
//     X-Request-Id correlation id, applies the per-client fixed-window rate
//     limit, and logs request entry/exit.
//   - etag: Wraps read endpoints in a conditional-request layer keyed by the
//     relevant version counter, answering 304 on a matching If-None-Match.
//
// These middleware components are registered globally or per-route group in
// the main application setup.
package middleware
