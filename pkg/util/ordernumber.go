package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a human-readable order number: an "FD-" brand
// prefix, the current date, and a UUID-derived suffix so numbers are unique
// without coordinating through the database.
func GenerateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("FD-%s-%s", now.Format("20060102"), suffix)
}
