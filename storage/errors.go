package storage

import "errors"

// ErrLibraryNotFound indicates that the directory or files an Open*
// call was pointed at do not contain a recognizable pair of stores.
var ErrLibraryNotFound = errors.New("library not found")

// ErrUnsupportedSchema indicates that a store declares a
// (major, minor, patch) triple this package does not recognize.
var ErrUnsupportedSchema = errors.New("unsupported schema version")

// ErrTrackDeleted is returned by operations on a Track id that no
// longer has a row.
var ErrTrackDeleted = errors.New("track has been deleted")

// ErrClosed is returned by any operation attempted on a Library whose
// Close method has already run.
var ErrClosed = errors.New("library is closed")

// ErrTxInProgress indicates that Begin was called while a transaction
// was already open on this Library.
var ErrTxInProgress = errors.New("a transaction is already in progress")

// ErrNoTxInProgress indicates that Commit or Rollback was called with
// no transaction open.
var ErrNoTxInProgress = errors.New("no transaction is in progress")

// ErrTrackDatabaseInconsistency indicates that more than one Track row
// matched an id that is supposed to be a primary key, i.e. the store
// itself is corrupt.
var ErrTrackDatabaseInconsistency = errors.New("more than one track row matches id")

// ErrDatabaseInconsistency indicates that a store's on-disk catalog
// does not match its declared schema version, or that its two stores'
// Information rows disagree. Wraps a *schema.DatabaseInconsistency
// where one is available.
var ErrDatabaseInconsistency = errors.New("database inconsistency")

// ErrStorageError wraps low-level failures against the underlying
// SQLite connection that are not attributable to a bad schema or a
// caller mistake — e.g. a statement that fails to prepare.
var ErrStorageError = errors.New("storage error")
