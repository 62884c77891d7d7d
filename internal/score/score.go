// Package score ranks candidate contact values for relevance to a record.
package score

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/config"
	"github.com/sells-group/outreach-cli/internal/model"
)

// Kind identifies the type of candidate value being scored.
type Kind string

const (
	KindEmail   Kind = "email"
	KindPhone   Kind = "phone"
	KindWebsite Kind = "website"
)

// Fixed vocabularies used by the heuristics.
var (
	professionalDomains = []string{".edu", "psychologist", "therapy", "counseling", "wellness"}
	genericPrefixes     = []string{"info@", "contact@", "admin@", "office@"}
	professionalTerms   = []string{"therapy", "counseling", "psychologist", "wellness"}
	lowValueDomains     = []string{"facebook", "linkedin", "psychology.com", "healthgrades"}
	preferredTLDs       = []string{".com", ".org", ".net"}
)

// ScoredCandidate pairs a raw candidate with its relevance score.
type ScoredCandidate struct {
	Value string  `json:"value"`
	Score float64 `json:"score"`
}

// Scorer computes heuristic relevance scores for candidate values. Scoring
// is deterministic and additive; the sum is clamped to [0, 1] once at the
// end, never in between.
type Scorer struct {
	cfg config.ScoreConfig
}

// New creates a Scorer with the given weights.
func New(cfg config.ScoreConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the relevance of a candidate value to a record.
func (s *Scorer) Score(candidate string, rec model.Record, kind Kind) float64 {
	total := 0.0

	switch kind {
	case KindEmail:
		total += s.scoreEmail(candidate, rec)
	case KindPhone:
		total += s.scorePhone(candidate, rec)
	case KindWebsite:
		total += s.scoreWebsite(candidate, rec)
	}

	// Location tokens apply to every kind.
	if rec.Location != "" {
		lower := strings.ToLower(candidate)
		for _, part := range strings.Fields(strings.ToLower(rec.Location)) {
			if len(part) > 2 && strings.Contains(lower, part) {
				total += s.cfg.LocationBonus
				break
			}
		}
	}

	return math.Min(math.Max(total, 0.0), 1.0)
}

func (s *Scorer) scoreEmail(candidate string, rec model.Record) float64 {
	score := 0.0
	lower := strings.ToLower(candidate)

	// Short name tokens match too freely.
	for _, part := range strings.Fields(strings.ToLower(rec.Name)) {
		if len(part) > 2 && strings.Contains(lower, part) {
			score += s.cfg.EmailNameToken
			break
		}
	}

	if containsAny(lower, professionalDomains...) {
		score += s.cfg.EmailProDomain
	}

	if practice := strings.ToLower(rec.PracticeName); practice != "" && strings.Contains(lower, practice) {
		score += s.cfg.EmailPracticeName
	}

	if containsAny(lower, genericPrefixes...) {
		score += s.cfg.EmailGenericPenalty
	}

	return score
}

func (s *Scorer) scorePhone(candidate string, rec model.Record) float64 {
	score := 0.0

	if rec.Phone != "" {
		// Matching area codes suggest the same region.
		if digitPrefix(candidate, 3) == digitPrefix(rec.Phone, 3) {
			score += s.cfg.PhoneAreaCode
		}
	}

	// The raw candidate appearing anywhere in the record's existing data is
	// a strong signal the number was already associated with this person.
	if strings.Contains(renderRecord(rec), candidate) {
		score += s.cfg.PhoneVerbatim
	}

	return score
}

func (s *Scorer) scoreWebsite(candidate string, rec model.Record) float64 {
	score := 0.0
	lower := strings.ToLower(candidate)

	for _, part := range strings.Fields(strings.ToLower(rec.Name)) {
		if len(part) > 2 && strings.Contains(lower, part) {
			score += s.cfg.WebsiteNameToken
			break
		}
	}

	if practice := strings.ToLower(rec.PracticeName); practice != "" && strings.Contains(lower, practice) {
		score += s.cfg.WebsitePracticeName
	}

	if containsAny(lower, professionalTerms...) {
		score += s.cfg.WebsiteProTerm
	}

	for _, tld := range preferredTLDs {
		if strings.HasSuffix(lower, tld) {
			score += s.cfg.WebsiteTLDBonus
			break
		}
	}

	if containsAny(lower, lowValueDomains...) {
		score += s.cfg.WebsiteLowValuePenalty
	}

	return score
}

// Rank scores every candidate and returns the full list sorted by
// descending score. Equal scores keep input order.
func (s *Scorer) Rank(candidates []string, rec model.Record, kind Kind) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, ScoredCandidate{Value: c, Score: s.Score(c, rec, kind)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Select returns the top-ranked candidate when its score meets the
// acceptance threshold, and false otherwise. The full ranking is logged at
// debug level for observability.
func (s *Scorer) Select(candidates []string, rec model.Record, kind Kind) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	ranked := s.Rank(candidates, rec, kind)
	zap.L().Debug("score: candidates ranked",
		zap.String("name", rec.Name),
		zap.String("kind", string(kind)),
		zap.Any("ranked", ranked),
	)

	if ranked[0].Score < s.cfg.Threshold {
		return "", false
	}
	return ranked[0].Value, true
}

// renderRecord produces the string rendering of a record used by the phone
// verbatim check. The match is intentionally broad: digits stored in any
// field count. Flagged for review in DESIGN.md.
func renderRecord(rec model.Record) string {
	rec.DebugSearchResults = nil
	data, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(data)
}

// digitPrefix returns up to n leading digits of s, ignoring everything else.
func digitPrefix(s string, n int) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
