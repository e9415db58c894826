// Package domain holds the Command entity and the rules a command must
// satisfy before it can be stored.
package domain
