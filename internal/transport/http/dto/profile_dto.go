package dto

import "github.com/meetitmo/backend/internal/domain/model"

type FeatureDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type TagDTO struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type ProfileDTO struct {
	SubjectID               int64        `json:"subjectId"`
	Username                string       `json:"username"`
	Bio                     string       `json:"bio"`
	Logo                    string       `json:"logo"`
	Photos                  []string     `json:"photos"`
	MainFeatures            []FeatureDTO `json:"mainFeatures"`
	Interests               []TagDTO     `json:"interests"`
	Institution             []FeatureDTO `json:"institution"`
	GenderPreferences       []string     `json:"genderPreferences"`
	RelationshipPreferences []TagDTO     `json:"relationshipPreferences"`
	IsStudent               bool         `json:"isStudent"`
}

type CandidateResponse struct {
	Profile ProfileDTO `json:"profile"`
}

type ProfileListResponse struct {
	Items []ProfileDTO `json:"items"`
}

func ProfileFromModel(p model.UserProfile) ProfileDTO {
	out := ProfileDTO{
		SubjectID:               p.SubjectID,
		Username:                p.Username,
		Bio:                     p.Bio,
		Logo:                    p.Logo,
		Photos:                  append([]string{}, p.Photos...),
		MainFeatures:            make([]FeatureDTO, 0, len(p.MainFeatures)),
		Interests:               tagsFromModel(p.Interests),
		Institution:             make([]FeatureDTO, 0, len(p.Institution)),
		GenderPreferences:       append([]string{}, p.GenderPreferences...),
		RelationshipPreferences: tagsFromModel(p.RelationshipPreferences),
		IsStudent:               p.IsStudent,
	}
	for _, f := range p.MainFeatures {
		out.MainFeatures = append(out.MainFeatures, FeatureDTO{Label: string(f.Kind), Value: f.Value})
	}
	for _, a := range p.Institution {
		out.Institution = append(out.Institution, FeatureDTO{Label: a.Label, Value: a.Value})
	}
	return out
}

func ProfilesFromModel(items []model.UserProfile) []ProfileDTO {
	out := make([]ProfileDTO, 0, len(items))
	for _, p := range items {
		out = append(out, ProfileFromModel(p))
	}
	return out
}

func tagsFromModel(tags []model.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagDTO{ID: t.ID, Text: t.Text})
	}
	return out
}
