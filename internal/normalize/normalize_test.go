package normalize

import (
	"encoding/json"
	"testing"

	"github.com/qepting91/job-feed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, s string) domain.RawPosting {
	t.Helper()
	var r domain.RawPosting
	require.NoError(t, json.Unmarshal([]byte(s), &r))
	return r
}

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "first matching entry wins",
			in:   `{"id":1,"contact_preference":[{"type":"phone","value":"123"},{"type":"whatsapp_link","value":"https://chat.whatsapp.com/a"},{"type":"whatsapp_link","value":"https://chat.whatsapp.com/b"}]}`,
			want: "https://chat.whatsapp.com/a",
		},
		{
			name: "no matching entry",
			in:   `{"id":1,"contact_preference":[{"type":"phone","value":"123"}]}`,
			want: "",
		},
		{
			name: "missing collection",
			in:   `{"id":1}`,
			want: "",
		},
		{
			name: "null collection",
			in:   `{"id":1,"contact_preference":null}`,
			want: "",
		},
		{
			name: "collection is an object",
			in:   `{"id":1,"contact_preference":{"type":"whatsapp_link","value":"x"}}`,
			want: "",
		},
		{
			name: "non-object entries are skipped",
			in:   `{"id":1,"contact_preference":["junk",42,null,{"type":"whatsapp_link","value":"https://chat.whatsapp.com/c"}]}`,
			want: "https://chat.whatsapp.com/c",
		},
		{
			name: "empty collection",
			in:   `{"id":1,"contact_preference":[]}`,
			want: "",
		},
		{
			name: "matching entry without value",
			in:   `{"id":1,"contact_preference":[{"type":"whatsapp_link"}]}`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WhatsAppLink(raw(t, tt.in)))
		})
	}
}

func TestPostings(t *testing.T) {
	in := []domain.RawPosting{
		raw(t, `{"id":7,"title":"Driver","salary":15000,"extra":"kept","contact_preference":[{"type":"whatsapp_link","value":"g1"}]}`),
		raw(t, `{"id":"8","title":null,"whatsapp_link":"stale"}`),
		raw(t, `{"id":7,"title":"Driver"}`),
	}

	out := Postings(in)
	require.Len(t, out, 3)

	assert.Equal(t, int64(7), out[0].ID)
	assert.Equal(t, domain.FlexString("Driver"), out[0].Title)
	assert.Equal(t, domain.FlexString("15000"), out[0].Salary)
	assert.Equal(t, domain.FlexString("g1"), out[0].WhatsAppLink)
	assert.Contains(t, out[0].Raw, "extra")

	assert.Equal(t, int64(8), out[1].ID)
	assert.Equal(t, "N/A", out[1].Title.Display())
	assert.Empty(t, out[1].WhatsAppLink, "raw whatsapp_link must be replaced by the derived value")

	// duplicates are kept
	assert.Equal(t, out[0].ID, out[2].ID)
}

func TestPostingsEmpty(t *testing.T) {
	assert.Empty(t, Postings(nil))
}

func TestPostingMarshalKeepsRawFields(t *testing.T) {
	p := Posting(raw(t, `{"id":3,"extra":{"a":1},"whatsapp_link":"old","contact_preference":[{"type":"whatsapp_link","value":"new"}]}`))

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var back domain.JobPosting
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, int64(3), back.ID)
	assert.Equal(t, domain.FlexString("new"), back.WhatsAppLink)
	assert.JSONEq(t, `{"a":1}`, string(back.Raw["extra"]))
}
