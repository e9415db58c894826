// Package store defines the command storage contract: a long-lived
// CommandStore that opens unit-of-work sessions, the ChangeSet that sessions
// use to buffer writes, and the errors every backend reports.
package store
