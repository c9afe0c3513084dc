// Package policy gates which commands a session may dispatch, for running
// the console under automation with a restricted surface.
package policy

import (
	"strings"

	clierr "github.com/avafoundry/ava-cli/internal/errors"
)

// CheckCommandAllowed accepts entries of the form "context" (whole context)
// or "context.method". An empty allowlist allows everything.
func CheckCommandAllowed(allowlist []string, contextName, method string) error {
	if len(allowlist) == 0 {
		return nil
	}
	path := normalize(contextName + "." + method)
	for _, allowed := range allowlist {
		entry := normalize(allowed)
		if entry == path || entry == normalize(contextName) {
			return nil
		}
	}
	return clierr.New(clierr.CodeBlocked, "command blocked by --enable-commands policy")
}

func normalize(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
