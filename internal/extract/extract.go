// Package extract pulls contact signals out of fetched page text.
package extract

import "regexp"

// Email and phone patterns mirror what shows up in practice on provider
// pages. The labeled variants catch prose like "email: jane@example.com"
// that the bare pattern can miss when the page collapses whitespace oddly;
// matches from both are unioned. False positives are expected and are
// filtered later by scoring, not here.
var (
	emailRe        = regexp.MustCompile(`(?i)[\w.-]+@[\w.-]+\.\w+`)
	labeledEmailRe = regexp.MustCompile(`(?i)(?:email|contact|e-mail):\s*([\w.-]+@[\w.-]+\.\w+)`)
	phoneRe        = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	labeledPhoneRe = regexp.MustCompile(`(?i)(?:phone|tel|call):\s*(\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`)
)

// Signals holds the candidate contact values found in one page.
type Signals struct {
	Emails []string
	Phones []string
}

// Extract scans page text for email and phone candidates. It is pure and
// never fails: no matches yields empty slices. Results are deduplicated in
// first-seen order.
func Extract(text string) Signals {
	emails := emailRe.FindAllString(text, -1)
	for _, m := range labeledEmailRe.FindAllStringSubmatch(text, -1) {
		emails = append(emails, m[1])
	}

	phones := phoneRe.FindAllString(text, -1)
	for _, m := range labeledPhoneRe.FindAllStringSubmatch(text, -1) {
		phones = append(phones, m[1])
	}

	return Signals{
		Emails: dedupe(emails),
		Phones: dedupe(phones),
	}
}

func dedupe(values []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
