package mode

import "strings"

// Mode is the interaction style inferred from a query. The zero value None
// means no mode-specific instruction is added to the prompt.
type Mode int

const (
	None Mode = iota
	TeacherMode
	ExamMode
	AnswerEvaluator
	ConceptExplainer
)

func (m Mode) String() string {
	switch m {
	case TeacherMode:
		return "teacherMode"
	case ExamMode:
		return "examMode"
	case AnswerEvaluator:
		return "answerEvaluator"
	case ConceptExplainer:
		return "conceptExplainer"
	default:
		return ""
	}
}

// MarshalText lets Mode appear as its name in JSON payloads.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

type rule struct {
	mode     Mode
	keywords []string
}

// rules are checked in order; the first rule with any keyword present wins.
var rules = []rule{
	{TeacherMode, []string{"teach", "quiz", "question me", "test my knowledge", "teacher mode", "test me"}},
	{ExamMode, []string{"exam", "mock exam", "practice test", "challenge me"}},
	{AnswerEvaluator, []string{"evaluate", "grade", "score", "check my answer"}},
	{ConceptExplainer, []string{"explain", "clarify", "help me understand", "what is", "define"}},
}

// Infer classifies query by case-insensitive keyword substring match.
func Infer(query string) Mode {
	q := strings.ToLower(query)
	for _, r := range rules {
		for _, k := range r.keywords {
			if strings.Contains(q, k) {
				return r.mode
			}
		}
	}
	return None
}
