// Package blacklistdata holds the embedded SQL injection fingerprint
// blacklist, compiled into the binary with go:embed following this
// codebase's convention of shipping static data files alongside the code
// that consumes them.
package blacklistdata

import (
	_ "embed"
	"sort"
	"strings"

	"github.com/kantega/wafdetect/waflog"
)

//go:embed fingerprints.txt
var rawFingerprints string

var sortedFingerprints []string

func init() {
	var entries []string
	for _, line := range strings.Split(rawFingerprints, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
	}
	if len(entries) == 0 {
		panic("blacklistdata: fingerprints.txt produced zero entries")
	}
	sort.Strings(entries)
	sortedFingerprints = entries
	waflog.WithFields(waflog.Fields{"entries": len(sortedFingerprints)}).Debug("sqli blacklist loaded")
}

// Contains reports whether v1 (the "0" + uppercased-fingerprint form) is
// a known SQL injection fingerprint.
func Contains(v1 string) bool {
	i := sort.SearchStrings(sortedFingerprints, v1)
	return i < len(sortedFingerprints) && sortedFingerprints[i] == v1
}
