package rules

import (
	"strings"
	"time"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
)

// MatchesFilters applies attribute filters to a single profile. The Postgres
// candidate query implements the same predicate in SQL.
func MatchesFilters(p model.UserProfile, f model.CandidateFilters, now time.Time) bool {
	if gender, ok := f.GenderFilter(); ok {
		value, _ := p.Feature(enums.FeatureKindGender)
		if strings.ToLower(strings.TrimSpace(value)) != gender {
			return false
		}
	}

	if f.HasAgeBounds() {
		raw, _ := p.Feature(enums.FeatureKindBirthdate)
		birthdate, ok := ParseBirthdate(raw)
		if !ok {
			return false
		}
		if !withinBounds(AgeAt(birthdate, now), f.AgeMin, f.AgeMax) {
			return false
		}
	}

	if f.HasHeightBounds() {
		raw, _ := p.Feature(enums.FeatureKindHeight)
		if !withinBounds(ParseHeightCM(raw), f.HeightMin, f.HeightMax) {
			return false
		}
	}

	if wanted, ok := f.RelationshipFilter(); ok && !overlaps(p.RelationshipPreferenceIDs(), wanted) {
		return false
	}

	return true
}

func withinBounds(value int, min, max *int) bool {
	if min != nil && value < *min {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}

func overlaps(have, want []string) bool {
	set := make(map[string]struct{}, len(want))
	for _, w := range want {
		set[w] = struct{}{}
	}
	for _, h := range have {
		if _, ok := set[h]; ok {
			return true
		}
	}
	return false
}
