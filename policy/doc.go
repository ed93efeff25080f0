// Package policy provides optional declarative rules that can be applied on
// top of a running engine, for example to clamp over-sized allocation
// requests or to fence off selected resource kinds during a drill. Rules
// travel via context and are entirely opt-in; callers that attach nothing
// keep the default behaviour (reject over-allocation, allow every kind).
package policy
