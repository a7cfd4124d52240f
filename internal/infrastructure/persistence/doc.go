// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer over PostgreSQL or SQLite. Repositories
// validate domain entities before writing, translate missing rows to
// apperr.ErrNotFound and unique violations to apperr.ErrConflict.
package persistence
