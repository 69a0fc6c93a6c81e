package repo

import (
	"time"

	"github.com/meetitmo/backend/internal/domain/model"
)

// CandidateQuery selects one profile for ViewerID. Now anchors age filters.
type CandidateQuery struct {
	ViewerID int64
	Filters  model.CandidateFilters
	Now      time.Time
}
