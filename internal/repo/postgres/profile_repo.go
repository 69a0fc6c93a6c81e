package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetitmo/backend/internal/domain/enums"
	"github.com/meetitmo/backend/internal/domain/model"
	"github.com/meetitmo/backend/internal/domain/rules"
	"github.com/meetitmo/backend/internal/repo"
)

// unboundedMax stands in for a missing upper bound in range predicates.
const unboundedMax = 1 << 20

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `
	p.subject_id,
	p.username,
	p.bio,
	p.logo,
	p.photos,
	p.main_features,
	p.interests,
	p.institution,
	p.gender_preferences,
	p.relationship_preferences,
	p.is_student`

// Upsert stores a profile and refreshes the filter columns derived from its features.
func (r *ProfileRepo) Upsert(ctx context.Context, p model.UserProfile) error {
	if p.SubjectID <= 0 {
		return fmt.Errorf("invalid profile subject id")
	}
	if r.pool == nil {
		return errNilPool
	}

	gender, _ := p.Feature(enums.FeatureKindGender)
	heightRaw, _ := p.Feature(enums.FeatureKindHeight)
	var birthdate *time.Time
	if raw, ok := p.Feature(enums.FeatureKindBirthdate); ok {
		if parsed, ok := rules.ParseBirthdate(raw); ok {
			birthdate = &parsed
		}
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO profiles (
	subject_id,
	username,
	bio,
	logo,
	photos,
	main_features,
	interests,
	institution,
	gender_preferences,
	relationship_preferences,
	is_student,
	gender,
	birthdate,
	height_cm,
	relationship_pref_ids,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
ON CONFLICT (subject_id) DO UPDATE SET
	username = EXCLUDED.username,
	bio = EXCLUDED.bio,
	logo = EXCLUDED.logo,
	photos = EXCLUDED.photos,
	main_features = EXCLUDED.main_features,
	interests = EXCLUDED.interests,
	institution = EXCLUDED.institution,
	gender_preferences = EXCLUDED.gender_preferences,
	relationship_preferences = EXCLUDED.relationship_preferences,
	is_student = EXCLUDED.is_student,
	gender = EXCLUDED.gender,
	birthdate = EXCLUDED.birthdate,
	height_cm = EXCLUDED.height_cm,
	relationship_pref_ids = EXCLUDED.relationship_pref_ids,
	updated_at = NOW()
`,
		p.SubjectID,
		p.Username,
		p.Bio,
		p.Logo,
		nonNilStrings(p.Photos),
		nonNilSlice(p.MainFeatures),
		nonNilSlice(p.Interests),
		nonNilSlice(p.Institution),
		nonNilStrings(p.GenderPreferences),
		nonNilSlice(p.RelationshipPreferences),
		p.IsStudent,
		strings.ToLower(strings.TrimSpace(gender)),
		birthdate,
		rules.ParseHeightCM(heightRaw),
		nonNilStrings(p.RelationshipPreferenceIDs()),
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func (r *ProfileRepo) ListByIDs(ctx context.Context, subjectIDs []int64) ([]model.UserProfile, error) {
	if r.pool == nil {
		return nil, errNilPool
	}
	if len(subjectIDs) == 0 {
		return []model.UserProfile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+profileColumns+`
FROM profiles p
WHERE p.subject_id = ANY($1::bigint[])
ORDER BY array_position($1::bigint[], p.subject_id)
`, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	items := make([]model.UserProfile, 0, len(subjectIDs))
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		items = append(items, profile)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return items, nil
}

// SelectRandomCandidate samples one eligible profile with ORDER BY random().
// Profiles the viewer has any interaction with are excluded.
func (r *ProfileRepo) SelectRandomCandidate(ctx context.Context, q repo.CandidateQuery) (model.UserProfile, error) {
	if q.ViewerID <= 0 {
		return model.UserProfile{}, fmt.Errorf("invalid viewer id")
	}
	if q.Now.IsZero() {
		q.Now = time.Now().UTC()
	}
	if r.pool == nil {
		return model.UserProfile{}, errNilPool
	}

	gender, applyGender := q.Filters.GenderFilter()
	applyAge := q.Filters.HasAgeBounds()
	applyHeight := q.Filters.HasHeightBounds()
	relationship, applyRelationship := q.Filters.RelationshipFilter()

	profile, err := scanProfile(r.pool.QueryRow(ctx, `
SELECT`+profileColumns+`
FROM profiles p
WHERE
	p.subject_id <> $1
	AND NOT EXISTS (
		SELECT 1
		FROM interactions i
		WHERE i.actor_id = $1
			AND i.target_id = p.subject_id
	)
	AND ($2::boolean = FALSE OR p.gender = $3)
	AND (
		$4::boolean = FALSE
		OR (
			p.birthdate IS NOT NULL
			AND DATE_PART('year', AGE($5::date, p.birthdate))::int BETWEEN $6 AND $7
		)
	)
	AND ($8::boolean = FALSE OR p.height_cm BETWEEN $9 AND $10)
	AND ($11::boolean = FALSE OR p.relationship_pref_ids && $12::text[])
ORDER BY random()
LIMIT 1
`,
		q.ViewerID,
		applyGender,
		gender,
		applyAge,
		q.Now.UTC(),
		lowerOrZero(q.Filters.AgeMin),
		upperOrMax(q.Filters.AgeMax),
		applyHeight,
		lowerOrZero(q.Filters.HeightMin),
		upperOrMax(q.Filters.HeightMax),
		applyRelationship,
		relationship,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.UserProfile{}, repo.ErrNoCandidates
		}
		return model.UserProfile{}, fmt.Errorf("select random candidate: %w", err)
	}

	return profile, nil
}

func scanProfile(row pgx.Row) (model.UserProfile, error) {
	var p model.UserProfile
	err := row.Scan(
		&p.SubjectID,
		&p.Username,
		&p.Bio,
		&p.Logo,
		&p.Photos,
		&p.MainFeatures,
		&p.Interests,
		&p.Institution,
		&p.GenderPreferences,
		&p.RelationshipPreferences,
		&p.IsStudent,
	)
	return p, err
}

func lowerOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func upperOrMax(v *int) int {
	if v == nil {
		return unboundedMax
	}
	return *v
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nonNilSlice[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
