package competitiondomain

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims, case-folds, strips diacritics and collapses internal
// whitespace to single spaces.
func NormalizeName(s string) string {
	// Transformers and casers carry state, so build them per call.
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(strip, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)
	return strings.Join(strings.Fields(out), " ")
}

// CandidateKeys returns the ordered, de-duplicated lookup keys for a name:
// the normalized name, the name with commas as spaces, and the swapped
// "Given Surname" / "Surname, Given" form depending on whether a comma is present.
func CandidateKeys(name string) []string {
	base := NormalizeName(name)
	if base == "" {
		return nil
	}

	keys := make([]string, 0, 3)
	seen := make(map[string]struct{}, 3)
	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	add(base)
	add(NormalizeName(strings.ReplaceAll(name, ",", " ")))

	if i := strings.Index(name, ","); i >= 0 {
		surname := NormalizeName(name[:i])
		given := NormalizeName(strings.ReplaceAll(name[i+1:], ",", " "))
		if surname != "" && given != "" {
			add(given + " " + surname)
		}
		return keys
	}

	tokens := strings.Fields(base)
	if len(tokens) >= 2 {
		surname := tokens[len(tokens)-1]
		add(surname + ", " + strings.Join(tokens[:len(tokens)-1], " "))
	}
	return keys
}

// NameIndex maps candidate keys to participant ids. The first participant
// indexed under a key keeps it.
//
// Multiple participants sharing a key are not reported; the earlier directory
// entry silently wins.
type NameIndex struct {
	byKey map[string]string
}

// NewNameIndex indexes every participant under the candidate keys of both its
// full name and its display name, in directory order.
func NewNameIndex(directory []Participant) *NameIndex {
	idx := &NameIndex{byKey: make(map[string]string, len(directory)*4)}
	for _, p := range directory {
		if p.ID == "" {
			continue
		}
		for _, name := range []string{p.FullName, p.DisplayName} {
			for _, key := range CandidateKeys(name) {
				if _, taken := idx.byKey[key]; !taken {
					idx.byKey[key] = p.ID
				}
			}
		}
	}
	return idx
}

// Resolve returns the participant id for the first candidate key of raw that
// is indexed.
func (idx *NameIndex) Resolve(raw string) (string, bool) {
	if idx == nil {
		return "", false
	}
	for _, key := range CandidateKeys(raw) {
		if id, ok := idx.byKey[key]; ok {
			return id, true
		}
	}
	return "", false
}
