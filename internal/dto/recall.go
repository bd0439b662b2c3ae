package dto

type RecallMatch struct {
	SessionID string  `json:"session_id" example:"sess_ab12cd34"`
	Kind      string  `json:"kind" example:"explain"`
	Prompt    string  `json:"prompt" example:"def f(x): return x+1"`
	Reply     string  `json:"reply" example:"This function increments its argument."`
	Score     float32 `json:"score" example:"0.87"`
}

type RecallResponse struct {
	Query   string        `json:"query" example:"python increment function"`
	Matches []RecallMatch `json:"matches"`
}
