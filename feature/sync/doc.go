// Package sync implements the synchronization pipeline against the upstream
// product feed.
//
// A full run fetches categories and products over HTTP, merges them into
// local storage idempotently (find-or-create for categories,
// update-if-changed for products), and bumps the catalog and stats version
// counters when the run changed product data. Fetch failures abort the run
// early with a phase error in the result; invalid records are skipped
// individually and never abort the batch.
//
// The orchestrator assumes a single writer and enforces it with a
// single-flight guard; the HTTP trigger and the background worker both
// funnel through it.
package sync
