// Package normalize turns raw API records into postings ready for the feed.
package normalize

import (
	"encoding/json"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/samber/lo"
)

const whatsAppLinkType = "whatsapp_link"

// WhatsAppLink returns the value of the first contact_preference entry typed
// "whatsapp_link", or "" when there is none. Entries that are not objects are
// skipped; a collection that is not an array yields "".
func WhatsAppLink(raw domain.RawPosting) string {
	prefs, ok := raw["contact_preference"]
	if !ok {
		return ""
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(prefs, &entries); err != nil {
		return ""
	}

	objects := lo.FilterMap(entries, func(e json.RawMessage, _ int) (domain.ContactPreference, bool) {
		var cp domain.ContactPreference
		if err := json.Unmarshal(e, &cp); err != nil {
			return cp, false
		}
		return cp, true
	})

	match, found := lo.Find(objects, func(cp domain.ContactPreference) bool {
		return cp.Type == whatsAppLinkType
	})
	if !found {
		return ""
	}
	return string(match.Value)
}

// Posting decodes one raw record and attaches the derived group link
func Posting(raw domain.RawPosting) domain.JobPosting {
	p := raw.Decode()
	p.WhatsAppLink = domain.FlexString(WhatsAppLink(raw))
	return p
}

// Postings normalizes a page, one output per input in the same order
func Postings(raws []domain.RawPosting) []domain.JobPosting {
	return lo.Map(raws, func(r domain.RawPosting, _ int) domain.JobPosting {
		return Posting(r)
	})
}
