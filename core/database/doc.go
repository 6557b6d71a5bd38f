// Package database manages the relational store connection.
//
// Connect opens a GORM handle for the configured driver. MySQL is the
// production driver; sqlite exists so tests can run against an in-memory
// database with identical query semantics.
package database
