// Package journal provides the bounded, human-readable audit log attached
// to every simulation session. The engine appends one entry per observable
// transition (allocation, completion, outcome); presentation layers poll
// Tail for the most recent entries. It abstracts the log away from any
// rendering concern so that consumers display entries however they like.
package journal
