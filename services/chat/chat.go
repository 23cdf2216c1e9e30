// Package chat implements the ordered message channel between a
// dispatcher and a driver. A conversation is identified by the
// unordered participant pair; the channel is created implicitly by the
// first message.
package chat

import (
	"sort"
	"strings"
)

// ConversationID derives the stable conversation key from the two
// participant ids. Both sides resolve to the same channel regardless of
// argument order.
func ConversationID(a, b string) string {
	pair := []string{a, b}
	sort.Strings(pair)
	return strings.Join(pair, "_")
}
