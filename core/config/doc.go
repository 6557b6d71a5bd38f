// Package config aggregates the application configuration.
//
// The Config struct is composed of partial configs owned by the packages
// they configure (server, database, logger, storage, ratelimit, upstream).
// Defaults come from `default:` struct tags; every key can be overridden via
// environment variables (SERVER_PORT, UPSTREAM_BASE_URL, ...) or a local
// .env file loaded through godotenv.
package config
