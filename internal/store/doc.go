// Package store persists upload records and DEXA lab inputs per browser
// session.
//
// MemoryStore keeps everything in process and is used when no database is
// configured. PostgresStore keeps the same data in PostgreSQL; its schema
// lives in Migrations and is applied with pg.Migrate.
package store
