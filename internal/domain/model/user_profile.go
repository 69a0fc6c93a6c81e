package model

import (
	"strings"

	"github.com/meetitmo/backend/internal/domain/enums"
)

type Feature struct {
	Kind  enums.FeatureKind `json:"label"`
	Value string            `json:"value"`
}

type Tag struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Attribute struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// UserProfile is a person eligible for matching. SubjectID is assigned by the identity provider.
type UserProfile struct {
	SubjectID               int64       `json:"subject_id"`
	Username                string      `json:"username"`
	Bio                     string      `json:"bio"`
	Logo                    string      `json:"logo"`
	Photos                  []string    `json:"photos"`
	MainFeatures            []Feature   `json:"main_features"`
	Interests               []Tag       `json:"interests"`
	Institution             []Attribute `json:"institution"`
	GenderPreferences       []string    `json:"gender_preferences"`
	RelationshipPreferences []Tag       `json:"relationship_preferences"`
	IsStudent               bool        `json:"is_student"`
}

// Feature returns the first value recorded for kind.
func (p UserProfile) Feature(kind enums.FeatureKind) (string, bool) {
	for _, f := range p.MainFeatures {
		if f.Kind == kind {
			return f.Value, true
		}
	}
	return "", false
}

func (p UserProfile) RelationshipPreferenceIDs() []string {
	ids := make([]string, 0, len(p.RelationshipPreferences))
	for _, tag := range p.RelationshipPreferences {
		if id := strings.TrimSpace(tag.ID); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
