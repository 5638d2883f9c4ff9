package meeting

import (
	"strings"

	domain "github.com/felixgeelhaar/fathom-mcp/internal/domain/meeting"
)

var searchReplacer = strings.NewReplacer(" ", "", "-", "", "_", "")

// normalizeSearch lowercases text, drops spaces, dashes and underscores,
// and strips one trailing "s" so simple plurals match their singular.
func normalizeSearch(text string) string {
	n := searchReplacer.Replace(strings.ToLower(text))
	if len(n) > 2 && strings.HasSuffix(n, "s") {
		n = n[:len(n)-1]
	}
	return n
}

// matchesSearch reports whether the normalized term occurs in the meeting's
// titles, an invitee name, or an invitee email.
func matchesSearch(m domain.Meeting, term string) bool {
	if strings.Contains(normalizeSearch(m.Title), term) {
		return true
	}
	if strings.Contains(normalizeSearch(m.MeetingTitle), term) {
		return true
	}
	for _, inv := range m.CalendarInvitees {
		if strings.Contains(normalizeSearch(inv.Name), term) {
			return true
		}
		if strings.Contains(strings.ToLower(inv.Email), term) {
			return true
		}
	}
	return false
}
