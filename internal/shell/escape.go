// Package shell provides shell-word escaping for external command lines.
package shell

import "strings"

// Quote wraps value in single quotes, doubling any embedded single quote,
// so the result always re-parses as a single shell word equal to value.
// Every externally-influenced token interpolated into a command line must
// pass through here.
func Quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
