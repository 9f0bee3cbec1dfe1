package logging

import (
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

// New builds the process-wide logger. Unknown level strings fall back to warn
// so a typo never silences error output.
func New(level string) hclog.Logger {
	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "tally",
		Level:  parsed,
		Output: os.Stderr,
	})
}
