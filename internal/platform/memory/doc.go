// Package memory provides an in-process implementation of store.CommandStore.
// Data lives only as long as the process, which makes it the default backend
// for development and the backend used by handler tests.
package memory
