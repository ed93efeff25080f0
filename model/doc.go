// Package model defines the data model of the simulation: the Level
// aggregate at the package root plus the resource and process sub-packages.
// The model is passive; all mutation flows through the arbiter service.
package model
