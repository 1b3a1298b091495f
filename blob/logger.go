package blob

import (
	"log"

	"github.com/xsco/libengineprime/common"
	"github.com/xsco/libengineprime/logdomain"
)

// logger is shared by every decode path in this package, the way
// schema's package-level logger is: there is no per-call struct to
// hang a *log.Logger field off.
var logger *log.Logger

func init() {
	var err error
	if logger, err = common.GetLogger(logdomain.Blob); err != nil {
		panic(err)
	}
} // func init()
