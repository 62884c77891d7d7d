package model

// ResultSet accumulates candidate values per kind for one record,
// deduplicating exact strings while preserving first-seen order. It is
// task-local and never shared across records.
type ResultSet struct {
	emails   orderedSet
	phones   orderedSet
	websites orderedSet
}

// NewResultSet returns an empty result set.
func NewResultSet() *ResultSet {
	return &ResultSet{}
}

// AddEmails adds email candidates, skipping duplicates.
func (rs *ResultSet) AddEmails(values ...string) {
	rs.emails.add(values...)
}

// AddPhones adds phone candidates, skipping duplicates.
func (rs *ResultSet) AddPhones(values ...string) {
	rs.phones.add(values...)
}

// AddWebsite adds a website candidate, skipping duplicates.
func (rs *ResultSet) AddWebsite(url string) {
	rs.websites.add(url)
}

// Emails returns the deduplicated email candidates in first-seen order.
func (rs *ResultSet) Emails() []string { return rs.emails.values }

// Phones returns the deduplicated phone candidates in first-seen order.
func (rs *ResultSet) Phones() []string { return rs.phones.values }

// Websites returns the deduplicated website candidates in first-seen order.
func (rs *ResultSet) Websites() []string { return rs.websites.values }

// Empty reports whether nothing was accumulated.
func (rs *ResultSet) Empty() bool {
	return len(rs.emails.values) == 0 && len(rs.phones.values) == 0 && len(rs.websites.values) == 0
}

// Snapshot copies the accumulated candidates into a SearchResults annex.
func (rs *ResultSet) Snapshot() *SearchResults {
	return &SearchResults{
		Emails:   append([]string(nil), rs.emails.values...),
		Phones:   append([]string(nil), rs.phones.values...),
		Websites: append([]string(nil), rs.websites.values...),
	}
}

type orderedSet struct {
	values []string
	seen   map[string]struct{}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.values = append(s.values, v)
	}
}
