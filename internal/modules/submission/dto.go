package submission

// Score is a pointer so a legitimate zero survives the required check.
type ScoreRequest struct {
	Score    *int   `json:"score" binding:"required"`
	Feedback string `json:"feedback"`
}
