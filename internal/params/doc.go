// Package params defines the typed configuration parameters exchanged
// with the bot-management backend.
//
// The backend describes each bot parameter as a JSON envelope carrying a
// type tag and a type-specific value:
//
//	{"type":"RGB","value":{"rgb":[255,0,100],"hex":"#ff0064"}}
//	{"type":"Range","value":[0.2,0.5]}
//
// Basic scalars (ints, floats, strings, booleans) travel without an
// envelope and are handled as plain JSON values by callers. This package
// covers the structured types the dashboard edits with dedicated widgets.
package params
