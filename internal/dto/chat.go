package dto

type AskRequest struct {
	Question string `json:"question" example:"What does a goroutine cost?"`
}

type AskResponse struct {
	SessionID string `json:"session_id" example:"sess_ab12cd34"`
	Reply     string `json:"reply" example:"A goroutine starts with a small stack..."`
}

type ChatRequest struct {
	SessionID string `json:"session_id" example:"sess_ab12cd34"`
	Message   string `json:"message" example:"Can you expand on that?"`
}

type ChatResponse struct {
	SessionID string `json:"session_id" example:"sess_ab12cd34"`
	Reply     string `json:"reply" example:"Sure. Each goroutine..."`
}
