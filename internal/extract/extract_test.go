package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEmails(t *testing.T) {
	t.Parallel()

	t.Run("bare address", func(t *testing.T) {
		t.Parallel()
		sig := Extract("Reach me at jane.doe@wellnesscenter.com for appointments.")
		assert.Equal(t, []string{"jane.doe@wellnesscenter.com"}, sig.Emails)
	})

	t.Run("labeled address unioned", func(t *testing.T) {
		t.Parallel()
		sig := Extract("Email: front-desk@practice.org\nOther: jane@therapy.net")
		assert.Contains(t, sig.Emails, "front-desk@practice.org")
		assert.Contains(t, sig.Emails, "jane@therapy.net")
	})

	t.Run("case insensitive", func(t *testing.T) {
		t.Parallel()
		sig := Extract("CONTACT: Jane.Doe@Wellness.COM")
		assert.Contains(t, sig.Emails, "Jane.Doe@Wellness.COM")
	})

	t.Run("duplicates collapsed", func(t *testing.T) {
		t.Parallel()
		sig := Extract("a@b.com a@b.com email: a@b.com")
		assert.Equal(t, []string{"a@b.com"}, sig.Emails)
	})
}

func TestExtractPhones(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"dashed", "Call 555-123-4567 today", "555-123-4567"},
		{"dotted", "555.123.4567", "555.123.4567"},
		{"parenthesized", "(555) 123-4567", "(555) 123-4567"},
		{"bare digits", "5551234567", "5551234567"},
		{"labeled", "Phone: 555-123-4567", "555-123-4567"},
		{"tel label", "tel: (555)123-4567", "(555)123-4567"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sig := Extract(tt.text)
			assert.Contains(t, sig.Phones, tt.want)
		})
	}
}

func TestExtractNoMatches(t *testing.T) {
	t.Parallel()
	sig := Extract("nothing to see here, just prose about therapy sessions")
	assert.Empty(t, sig.Emails)
	assert.Empty(t, sig.Phones)
}

func TestExtractEmptyInput(t *testing.T) {
	t.Parallel()
	sig := Extract("")
	assert.Empty(t, sig.Emails)
	assert.Empty(t, sig.Phones)
}

func TestExtractIdempotent(t *testing.T) {
	t.Parallel()
	text := "jane@wellness.com, call 555-123-4567 or phone: 555-999-0000"
	first := Extract(text)
	second := Extract(text)
	assert.Equal(t, first, second)
}

func TestExtractConcatenationSuperset(t *testing.T) {
	t.Parallel()
	a := "Contact jane@wellness.com or 555-123-4567."
	b := "Email: office@practice.org, tel: 555-999-0000."

	sigA := Extract(a)
	sigB := Extract(b)
	combined := Extract(a + "\n" + b)

	for _, e := range append(sigA.Emails, sigB.Emails...) {
		assert.Contains(t, combined.Emails, e)
	}
	for _, p := range append(sigA.Phones, sigB.Phones...) {
		assert.Contains(t, combined.Phones, p)
	}
}
