// Package arbiter is the only writer of simulation state. Every allocation
// flows through it: policy checks, pool debit, grant, journal entry, event
// publication, automatic completion and the terminal state evaluation all
// happen in one logical step.
package arbiter
