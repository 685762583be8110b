package auth

import "strconv"

// formatID renders a user id for the JWT subject claim.  Subjects are
// strings per RFC 7519, so numeric ids are carried in decimal form.
func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// ParseID converts a subject claim back into a user id.
func ParseID(sub string) (uint64, error) {
	return strconv.ParseUint(sub, 10, 64)
}
