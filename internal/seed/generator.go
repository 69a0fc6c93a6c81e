// Package seed generates fixture profiles for local environments.
package seed

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/jaswdr/faker"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/domain/rules"
)

var (
	relationshipTags = []model.Tag{
		{ID: "communication", Text: "Communication"},
		{ID: "dates", Text: "Dates"},
		{ID: "relationships", Text: "Relationships"},
		{ID: "friendship", Text: "Friendship"},
	}
	interestTags = []model.Tag{
		{ID: "music", Text: "Music"},
		{ID: "sport", Text: "Sport"},
		{ID: "travel", Text: "Travel"},
		{ID: "games", Text: "Games"},
		{ID: "books", Text: "Books"},
		{ID: "movies", Text: "Movies"},
	}
	hairColors = []string{"brown", "black", "blond", "red"}
	faculties  = []string{"Software Engineering", "Photonics", "Applied Mathematics", "Biotechnology"}
)

type Options struct {
	Count       int
	FirstID     int64
	Bucket      string
	PhotosEach  int
	RandomSeed  int64
	BirthFrom   time.Time
	BirthBefore time.Time
}

func (o Options) withDefaults() Options {
	if o.Count <= 0 {
		o.Count = 10
	}
	if o.FirstID <= 0 {
		o.FirstID = 386871
	}
	if o.PhotosEach <= 0 {
		o.PhotosEach = 3
	}
	if o.BirthFrom.IsZero() {
		o.BirthFrom = time.Date(1996, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if o.BirthBefore.IsZero() || !o.BirthBefore.After(o.BirthFrom) {
		o.BirthBefore = time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	o.Bucket = strings.Trim(strings.TrimSpace(o.Bucket), "/")
	return o
}

// Profiles returns Count profiles with consecutive subject ids. Equal RandomSeed values yield equal output.
func Profiles(opts Options) []model.UserProfile {
	opts = opts.withDefaults()

	var fake faker.Faker
	if opts.RandomSeed != 0 {
		fake = faker.NewWithSeed(rand.NewSource(opts.RandomSeed))
	} else {
		fake = faker.New()
	}

	out := make([]model.UserProfile, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		out = append(out, profile(fake, opts, i))
	}
	return out
}

func profile(fake faker.Faker, opts Options, i int) model.UserProfile {
	id := opts.FirstID + int64(i)
	gender := "male"
	if i%2 == 1 {
		gender = "female"
	}

	birthdate := fake.Time().TimeBetween(opts.BirthFrom, opts.BirthBefore).UTC()
	height := fake.IntBetween(155, 195)
	weight := fake.IntBetween(48, 95)

	photos := make([]string, 0, opts.PhotosEach)
	for j := 0; j < opts.PhotosEach; j++ {
		photos = append(photos, mediaRef(opts.Bucket, fmt.Sprintf("carousel/%d_%d.jpg", id, j)))
	}

	first := interestTags[i%len(interestTags)]
	second := interestTags[(i+1)%len(interestTags)]

	return model.UserProfile{
		SubjectID: id,
		Username:  fake.Person().FirstName(),
		Bio:       fake.Lorem().Sentence(8),
		Logo:      mediaRef(opts.Bucket, fmt.Sprintf("logos/%d_logo.png", id)),
		Photos:    photos,
		MainFeatures: []model.Feature{
			{Kind: enums.FeatureKindGender, Value: gender},
			{Kind: enums.FeatureKindBirthdate, Value: birthdate.Format("2006-01-02")},
			{Kind: enums.FeatureKindHeight, Value: strconv.Itoa(height) + " cm"},
			{Kind: enums.FeatureKindWeight, Value: strconv.Itoa(weight) + " kg"},
			{Kind: enums.FeatureKindZodiac, Value: rules.ZodiacFromBirthdate(birthdate)},
			{Kind: enums.FeatureKindHairColor, Value: fake.RandomStringElement(hairColors)},
		},
		Interests: []model.Tag{first, second},
		Institution: []model.Attribute{
			{Label: "faculty", Value: fake.RandomStringElement(faculties)},
		},
		GenderPreferences:       []string{model.GenderEveryone},
		RelationshipPreferences: []model.Tag{relationshipTags[i%len(relationshipTags)]},
		IsStudent:               true,
	}
}

func mediaRef(bucket, key string) string {
	if bucket == "" {
		return key
	}
	return bucket + "/" + key
}
