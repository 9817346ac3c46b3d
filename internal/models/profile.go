package models

import "time"

type UserStats struct {
	Questions   int64 `json:"questions"`
	Answers     int64 `json:"answers"`
	BestAnswers int64 `json:"bestAnswers"`
}

type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Activity kinds.
const (
	ActivityQuestion = "question"
	ActivityAnswer   = "answer"
	ActivityComment  = "comment"
)

// Activity is one item of a user's recent activity feed. QuestionID is the
// question the item belongs to, empty when it cannot be resolved.
type Activity struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	QuestionID string    `json:"questionId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Profile struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Image          string     `json:"image"`
	Bio            string     `json:"bio"`
	Location       string     `json:"location"`
	JoinedAt       time.Time  `json:"joinedAt"`
	Stats          UserStats  `json:"stats"`
	Badges         []Badge    `json:"badges"`
	RecentActivity []Activity `json:"recentActivity"`
}
