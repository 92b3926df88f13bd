// Package file provides the filesystem-backed annotation store: one
// AXF file per (user, document) pair under the data directory, with an
// in-memory load cache, atomic writes, legacy JSON migration, and an
// optional fsnotify watcher that invalidates cache entries when files
// change behind the process's back.
package file
