package enums

import "strings"

// FeatureKind labels a "main feature" entry on a profile.
type FeatureKind string

const (
	FeatureKindHeight    FeatureKind = "height"
	FeatureKindZodiac    FeatureKind = "zodiac"
	FeatureKindWeight    FeatureKind = "weight"
	FeatureKindGender    FeatureKind = "gender"
	FeatureKindBirthdate FeatureKind = "birthdate"
	FeatureKindWorldview FeatureKind = "worldview"
	FeatureKindChildren  FeatureKind = "children"
	FeatureKindLanguages FeatureKind = "languages"
	FeatureKindAlcohol   FeatureKind = "alcohol"
	FeatureKindSmoking   FeatureKind = "smoking"
	FeatureKindHairColor FeatureKind = "hair_color"
)

var featureKinds = map[FeatureKind]struct{}{
	FeatureKindHeight:    {},
	FeatureKindZodiac:    {},
	FeatureKindWeight:    {},
	FeatureKindGender:    {},
	FeatureKindBirthdate: {},
	FeatureKindWorldview: {},
	FeatureKindChildren:  {},
	FeatureKindLanguages: {},
	FeatureKindAlcohol:   {},
	FeatureKindSmoking:   {},
	FeatureKindHairColor: {},
}

func ParseFeatureKind(raw string) (FeatureKind, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.ReplaceAll(value, " ", "_")
	kind := FeatureKind(value)
	_, ok := featureKinds[kind]
	return kind, ok
}
