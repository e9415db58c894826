// Package sqldb implements store.CommandStore on top of database/sql.
//
// Statements are built with goqu for the configured dialect and rows are
// scanned with sqlx. The postgres and sqlite packages wrap this store with
// their driver setup and error mapping.
package sqldb
