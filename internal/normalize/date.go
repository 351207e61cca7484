package normalize

import (
	"strings"

	"github.com/araddon/dateparse"
)

// Date parses an arbitrary date-like string and re-emits it as an ISO
// calendar date (YYYY-MM-DD). Unparseable input yields ok=false and an empty
// string; it never returns an error, so a bad birthday can only ever become
// null downstream.
func Date(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}
