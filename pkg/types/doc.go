// Package types defines the entity structs, typed partial updates, sync
// bookkeeping types, and standard errors shared by the Satchel storage and
// sync layers.
package types
