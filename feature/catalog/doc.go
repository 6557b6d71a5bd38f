// Package catalog serves the read-optimized catalog endpoints: category
// listing with product counts, filtered/sorted/paginated product listing,
// and aggregate statistics. All responses embed the relevant version counter
// and are wrapped in the conditional-request ETag layer keyed by it.
//
// The package is a pure reader; the sync feature owns all catalog writes.
package catalog
