package models

// CompetitionStatus представляет статусы соревнования, хранящиеся в документе.
type CompetitionStatus string

const (
	StatusUpcoming  CompetitionStatus = "upcoming"
	StatusActive    CompetitionStatus = "active"
	StatusInactive  CompetitionStatus = "inactive"
	StatusCompleted CompetitionStatus = "completed"
)

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "easy"
	DifficultyMedium ProblemDifficulty = "medium"
	DifficultyHard   ProblemDifficulty = "hard"
)

type Problem struct {
	ID           string            `json:"id" bson:"id"`
	Title        string            `json:"title" bson:"title"`
	Difficulty   ProblemDifficulty `json:"difficulty" bson:"difficulty"`
	URL          string            `json:"url" bson:"url"`
	Slug         string            `json:"slug" bson:"slug"`
	IsValid      bool              `json:"isValid" bson:"isValid"`
	IsValidating bool              `json:"isValidating" bson:"isValidating"`
}

// Scoring maps problem difficulty to the points an accepted submission earns.
type Scoring struct {
	Easy   int `json:"easy" bson:"easy"`
	Medium int `json:"medium" bson:"medium"`
	Hard   int `json:"hard" bson:"hard"`
}

// PointsFor returns the configured points for a difficulty. An unrecognized
// difficulty scores zero; callers rely on the lenient default.
func (s Scoring) PointsFor(d ProblemDifficulty) int {
	switch d {
	case DifficultyEasy:
		return s.Easy
	case DifficultyMedium:
		return s.Medium
	case DifficultyHard:
		return s.Hard
	default:
		return 0
	}
}

// Competition is stored as a single document: problems, rules, scoring and the
// registered team codes are embedded. Date is kept as the ISO-8601 string the
// client sent; parsing happens where elapsed time is computed.
type Competition struct {
	ID          string            `json:"id" bson:"id"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description" bson:"description"`
	MaxTeamSize int               `json:"maxTeamSize" bson:"maxTeamSize"`
	Date        string            `json:"date" bson:"date"`
	Status      CompetitionStatus `json:"status" bson:"status"`
	Duration    int               `json:"duration" bson:"duration"`
	Teams       []string          `json:"teams" bson:"teams"`
	Problems    []Problem         `json:"problems" bson:"problems"`
	Rules       []string          `json:"rules" bson:"rules"`
	Scoring     Scoring           `json:"scoring" bson:"scoring"`
}

// ProblemByID looks a problem up in the embedded list.
func (c *Competition) ProblemByID(id string) (*Problem, bool) {
	for i := range c.Problems {
		if c.Problems[i].ID == id {
			return &c.Problems[i], true
		}
	}
	return nil, false
}
