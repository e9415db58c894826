// Package api exposes the command catalog over HTTP. Handlers decode and
// validate request documents, apply JSON Patch operations, and translate
// store errors into status codes without leaking internal detail.
package api
