// Package storage provides the object storage client used for archiving
// sync reports.
//
// The Client interface wraps the subset of Minio operations the service
// needs, so tests can substitute the mock implementation in mocks/.
package storage
