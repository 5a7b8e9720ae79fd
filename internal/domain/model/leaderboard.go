package model

type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	UserID         string  `json:"id"`
	Name           string  `json:"name"`
	IsAdmin        bool    `json:"is_admin"`
	ProblemsSolved int     `json:"problems_solved"`
	TotalPoints    int     `json:"total_points"`
	TotalTime      int     `json:"total_time"`
	AvgTime        float64 `json:"avg_time"`
}
