// Package main provides the entry point for the wishlist service.
// It serves a public wishlist API and an admin API for managing items and
// presentation presets using the Fiber framework, keeps its data in MySQL,
// PostgreSQL or SQLite through gorm, and ships an idempotent setup routine
// that creates and migrates the database schema.
package main
