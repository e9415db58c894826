// Package postgres wires the SQL command store to PostgreSQL through the pgx
// stdlib driver, and maps PostgreSQL error codes onto store errors.
package postgres
