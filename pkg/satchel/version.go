// Package satchel exposes module-level metadata.
package satchel

// Version is the current release version.
const Version = "0.1.0"
