package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SubmissionStatus соответствует вердиктам проверяющей системы.
type SubmissionStatus string

const (
	SubmissionAccepted          SubmissionStatus = "AC"
	SubmissionWrongAnswer       SubmissionStatus = "WA"
	SubmissionTimeLimitExceeded SubmissionStatus = "TLE"
)

// Submission is an append-only record on the team document. Once written it is
// never updated; Time is the elapsed seconds since the competition start at
// the moment the submission was recorded.
type Submission struct {
	ProblemID string           `json:"problem" bson:"problem"`
	Status    SubmissionStatus `json:"status" bson:"status"`
	Time      int64            `json:"time" bson:"time"`
	Member    string           `json:"member" bson:"member"`
	Points    int              `json:"points" bson:"points"`
}

type Team struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Code           string             `json:"code" bson:"code"`
	TeamName       string             `json:"teamName" bson:"teamName"`
	Avatar         string             `json:"avatar" bson:"avatar"`
	Color          string             `json:"color" bson:"color"`
	MaxMembers     int                `json:"maxMembers" bson:"maxMembers"`
	CurrentMembers int                `json:"currentMembers" bson:"currentMembers"`
	Points         int                `json:"points" bson:"points"`
	Submissions    []Submission       `json:"submissions" bson:"submissions"`

	AvatarKey *string `json:"-" bson:"avatarKey,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty" bson:"-"`
}
