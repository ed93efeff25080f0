// Package detector decides whether a level has deadlocked by attempting a
// full reduction of its unfinished processes against the currently
// available resources. It never mutates the level it inspects.
package detector
