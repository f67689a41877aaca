package service

// Exported aliases so the external test package can reference the
// unexported prompt constants.
const (
	AnswerMaxTokens   = answerMaxTokens
	AnswerTemperature = answerTemperature
	SystemPrompt      = systemPrompt
)
