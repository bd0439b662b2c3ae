package dto

type StructuredResult struct {
	Type                  string `json:"type" example:"problem"`
	SolutionOrExplanation string `json:"solution_or_explanation" example:"This function increments its argument."`
	ExtraNotes            string `json:"extra_notes" example:""`
}

type ExplainResponse struct {
	SessionID     string           `json:"session_id" example:"sess_ab12cd34"`
	ExtractedText string           `json:"extracted_text" example:"def f(x): return x+1"`
	Result        StructuredResult `json:"result"`
}
