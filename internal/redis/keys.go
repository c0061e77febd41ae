package redisx

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "jambo:v1"

func KeyResourceSummary(resourceID uuid.UUID) string {
	return fmt.Sprintf("%s:resource:%s:summary", ns, resourceID)
}

// KeyResourceCalendar keys a calendar snapshot by range. Calendar entries are
// not enumerable for deletion, so they carry a short TTL instead of being
// invalidated; Phase B re-checks make that staleness harmless.
func KeyResourceCalendar(resourceID uuid.UUID, from, to string) string {
	return fmt.Sprintf("%s:resource:%s:calendar:%s:%s", ns, resourceID, from, to)
}

func ChannelResourcesChanged() string {
	return ns + ":resources:changed"
}
