package model

import "strings"

const GenderEveryone = "everyone"

// CandidateFilters narrows candidate selection. Nil bounds are not applied.
type CandidateFilters struct {
	Gender                  string
	AgeMin                  *int
	AgeMax                  *int
	HeightMin               *int
	HeightMax               *int
	RelationshipPreferences []string
}

func (f CandidateFilters) GenderFilter() (string, bool) {
	value := strings.ToLower(strings.TrimSpace(f.Gender))
	if value == "" || value == GenderEveryone {
		return "", false
	}
	return value, true
}

// RelationshipFilter returns the trimmed, de-duplicated preference ids. Blank ids are dropped.
func (f CandidateFilters) RelationshipFilter() ([]string, bool) {
	if len(f.RelationshipPreferences) == 0 {
		return nil, false
	}

	out := make([]string, 0, len(f.RelationshipPreferences))
	seen := make(map[string]struct{}, len(f.RelationshipPreferences))
	for _, id := range f.RelationshipPreferences {
		value := strings.TrimSpace(id)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out, len(out) > 0
}

func (f CandidateFilters) HasAgeBounds() bool {
	return f.AgeMin != nil || f.AgeMax != nil
}

func (f CandidateFilters) HasHeightBounds() bool {
	return f.HeightMin != nil || f.HeightMax != nil
}
