package service

import "strings"

// sanitizeUTF8 drops invalid UTF-8 bytes from model output and user input
// before it is stored in Postgres or encoded into a response.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
