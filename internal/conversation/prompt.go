package conversation

import "fmt"

const explainTemplate = `You are a desktop screen assistant. The following text was extracted from the user's screen with OCR:

---
%s
---

Classify the content as exactly one of "problem" (a coding or homework problem to solve), "paragraph" (prose to summarize or explain), or "general" (anything else). Respond with only a JSON object of this shape and nothing else:

{"type": "<problem|paragraph|general>", "solution_or_explanation": "<your solution or explanation>", "extra_notes": "<anything worth adding, or empty>"}`

const explainStreamTemplate = `You are a desktop screen assistant. The following text was extracted from the user's screen with OCR:

---
%s
---

Explain what is on the screen. If it contains a problem, solve it. Answer in markdown.`

func explainPrompt(extracted string) string {
	return fmt.Sprintf(explainTemplate, extracted)
}

func explainStreamPrompt(extracted string) string {
	return fmt.Sprintf(explainStreamTemplate, extracted)
}
