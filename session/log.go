// SPDX-License-Identifier: EPL-2.0

package session

import "github.com/decred/slog"

var log slog.Logger = slog.Disabled

// SetLog sets the package-level logger. Sessions created without
// WithLogger log through it.
func SetLog(v slog.Logger) {
	log = v
}
