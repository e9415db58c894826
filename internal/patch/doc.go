// Package patch applies RFC 6902 JSON Patch operations to documents with a
// fixed set of string fields.
//
// Only single-segment paths are supported ("/howTo"), since the documents it
// patches are flat. Field names are matched case-insensitively.
package patch
