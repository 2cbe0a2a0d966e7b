package domain

const (
	LatestDefaultLimit = 50
	LatestMaxLimit     = 500
)

type LatestRequest struct {
	Limit int `query:"limit" validate:"min=1,max=500"`
}

type LatestResponse struct {
	Total int64       `json:"total"`
	Limit int         `json:"limit"`
	Count int         `json:"count"`
	Rows  []GpsRecord `json:"rows"`
}

// ClampLimit folds any client-supplied limit into [1, LatestMaxLimit].
// An explicit 0 clamps up to 1 like any other out-of-range value; the
// absent-parameter default is the caller's job (see LatestDefaultLimit).
func (r LatestRequest) ClampLimit() int {
	if r.Limit < 1 {
		return 1
	}
	if r.Limit > LatestMaxLimit {
		return LatestMaxLimit
	}
	return r.Limit
}

type HideRequest struct {
	Reason *string `json:"reason,omitempty"`
}

type ModerationResult struct {
	ID     int64 `json:"id"`
	Hidden bool  `json:"hidden"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"`
}

type PointStats struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
	Minutes    int              `json:"minutes"`
}
