package rows

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// tempPrefix namespaces client-generated ids away from server ids.
const tempPrefix = "new-"

// NewTempID returns a fresh placeholder id.
func NewTempID() string {
	return tempPrefix + strings.ToLower(ulid.Make().String())
}

// IsTempID reports whether id was produced by NewTempID.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, tempPrefix)
}
