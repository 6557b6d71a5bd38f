// Package version maintains the process-wide monotonic version counters used
// for cache invalidation and ETag generation.
//
// Two independent counters exist: catalog_version (bumped when the
// category/product set changes) and stats_version (bumped when the aggregate
// statistics become stale). Counters are stored in the relational store so
// they survive restarts, and updates are serialized per key to avoid lost
// increments under concurrent requests.
package version
