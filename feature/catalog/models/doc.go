// Package models defines the persisted catalog entities.
package models
