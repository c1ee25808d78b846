package domain

import "context"

// AnswerRequest is the context handed to a hosted language model for a follow-up question.
type AnswerRequest struct {
	Subject   string // record name
	Knowledge string // record knowledge block
	Question  string
	Lang      string // language tag the answer should be written in
}

// Answerer produces a free-text answer grounded on the record knowledge.
type Answerer interface {
	Answer(ctx context.Context, req AnswerRequest) (string, error)
}
