package schema

import (
	"log"

	"github.com/xsco/libengineprime/common"
	"github.com/xsco/libengineprime/logdomain"
)

// logger is shared by every function in this package; schema has no
// per-call state to hang a logger off, so one package-level instance
// takes the place of the per-Library logger the storage package uses.
var logger *log.Logger

func init() {
	var err error
	if logger, err = common.GetLogger(logdomain.Schema); err != nil {
		panic(err)
	}
} // func init()
