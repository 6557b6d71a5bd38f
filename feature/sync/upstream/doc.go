// Package upstream implements the HTTP client for the external product feed.
package upstream
