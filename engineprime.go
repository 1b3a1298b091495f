// Package engineprime reads and writes the Engine Library database
// format used by Denon DJ hardware and Engine DJ desktop software: a
// pair of SQLite databases, a music store and a performance-data
// store, sharing a schema version and a library UUID.
//
// Library is the entry point: open an existing pair with OpenExisting,
// create a fresh pair with OpenNew, or work entirely in memory with
// OpenInMemory. Every other type here is a re-export of a type that
// lives in one of this module's subpackages, gathered so that callers
// linking only the root package get a complete, stable surface.
package engineprime

import (
	"github.com/xsco/libengineprime/blob"
	"github.com/xsco/libengineprime/schema"
	"github.com/xsco/libengineprime/semver"
	"github.com/xsco/libengineprime/storage"
)

// Library is the storage facade for one Engine Library: a music store
// and a performance-data store sharing a schema version.
type Library = storage.Library

// Track, CanonicalMetaData, CanonicalIntMetaData and PerformanceData
// mirror the row shapes this library reads and writes.
type (
	Track                = storage.Track
	CanonicalMetaData    = storage.CanonicalMetaData
	CanonicalIntMetaData = storage.CanonicalIntMetaData
	PerformanceData      = storage.PerformanceData
	MetaDataType         = storage.MetaDataType
	IntMetaDataType      = storage.IntMetaDataType
)

// Version is a (major, minor, patch) schema version triple.
type Version = semver.Version

// Supported versions, in ascending order.
var (
	V1_6_0    = semver.V1_6_0
	V1_7_1    = semver.V1_7_1
	V1_9_1    = semver.V1_9_1
	V1_11_1   = semver.V1_11_1
	V1_13_0   = semver.V1_13_0
	V1_13_1   = semver.V1_13_1
	V1_13_2   = semver.V1_13_2
	V1_15_0   = semver.V1_15_0
	V1_17_0   = semver.V1_17_0
	V1_18_0FW = semver.V1_18_0FW
	V1_18_0EP = semver.V1_18_0EP
)

// OpenExisting, OpenNew and OpenInMemory open a Library, as documented
// on the storage package.
var (
	OpenExisting = storage.OpenExisting
	OpenNew      = storage.OpenNew
	OpenInMemory = storage.OpenInMemory
)

// Sentinel errors, aliased from the subpackage that actually returns
// them so that callers can depend on this package alone.
var (
	ErrLibraryNotFound            = storage.ErrLibraryNotFound
	ErrUnsupportedSchema          = storage.ErrUnsupportedSchema
	ErrTrackDeleted               = storage.ErrTrackDeleted
	ErrTrackDatabaseInconsistency = storage.ErrTrackDatabaseInconsistency
	ErrDatabaseInconsistency      = storage.ErrDatabaseInconsistency
	ErrStorageError               = storage.ErrStorageError
	ErrCorruptBlob                = blob.ErrCorruptBlob
	ErrUnsupportedBlobVersion     = blob.ErrUnsupportedBlobVersion
)

// DatabaseInconsistency is returned by schema.Validate (and, wrapped
// together with ErrDatabaseInconsistency, by OpenExisting) when a
// store's catalog does not match its declared version exactly.
type DatabaseInconsistency = schema.DatabaseInconsistency
