// Package logdomain provides constants for log sources used throughout
// the library.
package logdomain

import "strconv"

//go:generate stringer -type=ID

// ID represents a log source.
type ID uint8

// These constants signify the various parts of the library.
const (
	Schema ID = iota
	Version
	Blob
	Storage
)

var idNames = [...]string{
	"Schema",
	"Version",
	"Blob",
	"Storage",
}

// String returns the human-readable name of a log domain.
func (i ID) String() string {
	if int(i) < 0 || int(i) >= len(idNames) {
		return "ID(" + strconv.Itoa(int(i)) + ")"
	}
	return idNames[i]
} // func (i ID) String() string

// AllDomains returns a slice of all the known log sources.
func AllDomains() []ID {
	return []ID{
		Schema,
		Version,
		Blob,
		Storage,
	}
} // func AllDomains() []ID
