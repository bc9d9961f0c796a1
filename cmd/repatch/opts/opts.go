package opts

import (
	"github.com/walteh/repatch/pkg/report"
)

// RootOpts holds shared dependencies for all commands
type RootOpts struct {
	// ConfigFile is the path to the patch configuration file
	ConfigFile string

	// Reporter emits user-facing output
	Reporter *report.UserLogger
}
