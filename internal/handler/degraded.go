package handler

import "strings"

// connectivityPatterns are message fragments that identify a database
// that is unreachable rather than a query that is wrong. Public listing
// endpoints treat these as "service temporarily degraded" and answer an
// empty result set instead of a 500, so storefront pages render empty
// but alive.
var connectivityPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timed out",
	"no such host",
	"dial tcp",
	"failed to connect",
	"conn closed",
	"broken pipe",
	"i/o timeout",
	"server login has been failing",
}

// isConnectivityError reports whether err looks like a database
// connectivity failure.
func isConnectivityError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range connectivityPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
