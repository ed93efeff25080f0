// Package generator builds playable levels: it scales the resource pool
// down as levels climb, samples process blueprints from the catalog and
// perturbs their demands so later levels stay fresh.
package generator
