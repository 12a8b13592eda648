package dto

type AskQuestionRequest struct {
	Question       string `json:"question" validate:"required"`
	PriorAnswer    string `json:"prior_answer"`
	ConversationId string `json:"conversation_id" validate:"omitempty,max=128"`
}

type AskQuestionResponse struct {
	ConversationId string          `json:"conversation_id,omitempty"`
	Question       string          `json:"question"`
	Answer         string          `json:"answer"`
	Mode           string          `json:"mode"`
	Failed         bool            `json:"failed"`
	Sources        []NoteReference `json:"sources"`
}

// NoteReference is a retrieved note cited in an answer.
type NoteReference struct {
	Id    string `json:"id"`
	Title string `json:"title"`
}

// AudioQuestionResponse keeps the {question, answer} shape the recorder UI reads.
type AudioQuestionResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
