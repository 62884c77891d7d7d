// Package model defines the data types shared across the enrichment pipeline.
package model

// Record is a single provider contact record from the input dataset.
// The email, phone, and website fields are present only once confidently
// known; enrichment fills absent fields and never overwrites existing ones
// within a run.
type Record struct {
	Name         string   `json:"name"`
	Location     string   `json:"location,omitempty"`
	Specialties  []string `json:"specialties,omitempty"`
	PracticeName string   `json:"practice_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`

	// DebugSearchResults retains the raw candidate sets discovered during
	// enrichment when annex capture is enabled.
	DebugSearchResults *SearchResults `json:"debug_search_results,omitempty"`
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	out := r
	if r.Specialties != nil {
		out.Specialties = make([]string, len(r.Specialties))
		copy(out.Specialties, r.Specialties)
	}
	if r.DebugSearchResults != nil {
		out.DebugSearchResults = r.DebugSearchResults.Clone()
	}
	return out
}

// Dataset is the input and output file shape: records under the
// "therapists" key.
type Dataset struct {
	Therapists []Record `json:"therapists"`
}

// Clone returns a deep copy of the dataset, suitable for handing to the
// checkpoint writer. Snapshots must not be mutated after submission.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{Therapists: make([]Record, len(d.Therapists))}
	for i, r := range d.Therapists {
		out.Therapists[i] = r.Clone()
	}
	return out
}

// SearchResults holds the deduplicated raw candidates discovered for one
// record during a run.
type SearchResults struct {
	Emails   []string `json:"emails,omitempty"`
	Phones   []string `json:"phones,omitempty"`
	Websites []string `json:"websites,omitempty"`
}

// Clone returns a deep copy.
func (s *SearchResults) Clone() *SearchResults {
	if s == nil {
		return nil
	}
	out := &SearchResults{}
	out.Emails = append(out.Emails, s.Emails...)
	out.Phones = append(out.Phones, s.Phones...)
	out.Websites = append(out.Websites, s.Websites...)
	return out
}

// Empty reports whether no candidates of any kind were discovered.
func (s *SearchResults) Empty() bool {
	return s == nil || (len(s.Emails) == 0 && len(s.Phones) == 0 && len(s.Websites) == 0)
}

// RunStats aggregates counters for a full enrichment run. Mutation happens
// under the pipeline's lock; reads are only valid after all tasks finish.
type RunStats struct {
	Processed   int `json:"processed"`
	Enriched    int `json:"enriched"`
	Errors      int `json:"errors"`
	EmailsFound int `json:"total_emails_found"`
	PhonesFound int `json:"total_phones_found"`
}
