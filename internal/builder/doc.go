// Package builder runs generation end to end: it opens the metadata
// source, resolves and links the requested kinds, renders every target and
// writes the files once all of them rendered.
package builder
