// Package common provides ambient facilities — logging and a couple of
// small helpers — shared across the library's packages.
//
// Unlike an application, this library has no base directory, no log
// file of its own and no configuration: it is linked into a host
// process, so logging goes to stderr, filtered by level, and the host
// is free to redirect os.Stderr or tighten PackageLevels as it sees
// fit.
package common

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hashicorp/logutils"
	uuid "github.com/odeke-em/go-uuid"
	"github.com/xsco/libengineprime/logdomain"
)

// Name identifies the library in log output.
// Debug is a constant flag; no code in this library reads it.
const (
	Name  = "libengineprime"
	Debug = false
)

// LogLevels are the names of the log levels supported by the logger,
// from least to most severe.
var LogLevels = []logutils.LogLevel{
	"TRACE",
	"DEBUG",
	"INFO",
	"WARN",
	"ERROR",
	"CRITICAL",
	"CANTHAPPEN",
	"SILENT",
}

// MinLogLevel is the default minimum level a log message must have to
// be written out.
var MinLogLevel logutils.LogLevel = "INFO"

// PackageLevels defines the minimum log level per log domain. Callers
// embedding the library may tighten or loosen individual domains.
var PackageLevels = make(map[logdomain.ID]logutils.LogLevel, len(LogLevels))

func init() {
	for _, id := range logdomain.AllDomains() {
		PackageLevels[id] = MinLogLevel
	}
} // func init()

// LogWriter is the sink log.Logger instances returned by GetLogger
// write to. It defaults to os.Stderr, but tests may swap it out to
// capture output.
var LogWriter io.Writer = os.Stderr

// GetLogger returns a *log.Logger for the given domain, filtered at
// that domain's configured minimum level.
func GetLogger(domain logdomain.ID) (*log.Logger, error) {
	var logName = fmt.Sprintf("%s.%s ", Name, domain.String())

	var lvl = PackageLevels[domain]
	if lvl == "" {
		lvl = MinLogLevel
	}

	filter := &logutils.LevelFilter{
		Levels:   LogLevels,
		MinLevel: lvl,
		Writer:   LogWriter,
	}

	logger := log.New(filter, logName, log.Ldate|log.Ltime|log.Lshortfile)
	return logger, nil
} // func GetLogger(domain logdomain.ID) (*log.Logger, error)

// NewUUID returns a freshly generated, randomized UUID, used once per
// library to stamp its Information rows.
func NewUUID() string {
	return uuid.NewRandom().String()
} // func NewUUID() string
