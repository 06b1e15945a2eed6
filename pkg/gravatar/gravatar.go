package gravatar

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
)

// URL derives the avatar URL for an email. Deterministic, no network call.
// The email is trimmed and lowercased before hashing per the gravatar spec.
func URL(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	hash := md5.Sum([]byte(normalized))

	params := url.Values{}
	params.Set("s", "200")
	params.Set("r", "pg")
	params.Set("d", "mm")

	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?%s", hash, params.Encode())
}
