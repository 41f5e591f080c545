// internal/workers/career/recommend-career/models.go
package recommendcareer

import "career-workers/internal/recommendation"

type Input struct {
	Profile recommendation.Profile
	UserID  string
}

type Output struct {
	Recommendation string `json:"recommendation"`
	Source         string `json:"source"`
	Strategy       string `json:"strategy"`
	Cached         bool   `json:"cached"`
}
