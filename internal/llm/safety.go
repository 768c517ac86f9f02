package llm

import "strings"

// SafetyPreamble is prepended to every prompt sent to a generative backend.
// It is immutable: no caller can remove or weaken it.
const SafetyPreamble = `You are a medical report explanation assistant providing educational information only.

CRITICAL SAFETY RULES - YOU MUST FOLLOW THESE:
1. Do NOT provide medical advice
2. Do NOT make diagnoses
3. Do NOT suggest treatment

GUIDELINES:
- Explain medical terms and concepts in simple, educational language
- Describe what test results mean in general terms
- Encourage consulting healthcare providers for personalized guidance
- Focus on general health information, not individual medical decisions
- Always recommend professional medical consultation for any concerns
- Do NOT prescribe or suggest specific medications
- Do NOT give emergency instructions (except "call emergency services")
`

// Disclaimer is appended to any response that trips the post-hoc safety
// validation. The response is still delivered; the gateway fails open.
const Disclaimer = "\n\n[This response was flagged for safety review. Please consult your healthcare provider.]"

// Violation describes one disallowed phrase found in generated text.
type Violation struct {
	Category string
	Phrase   string
}

var diagnosisPhrases = []string{
	"you have ", "you suffer from", "you are diabetic", "you are hypertensive",
	"diagnosis:", "diagnosed with", "definitely have",
}

var treatmentPhrases = []string{
	"take this medication", "you should take", "prescribe", "start taking",
	"stop taking", "don't take", "switch to", "increase your dose",
}

var advicePhrases = []string{
	"follow this diet", "do this exercise", "avoid these foods",
	"sleep like this", "here's what you should do",
}

// ValidateResponse scans generated text for diagnostic statements, treatment
// directives, and personalized-advice directives. A non-empty result means
// the text needs the disclaimer, not that it is discarded.
func ValidateResponse(text string) []Violation {
	lower := strings.ToLower(text)
	var violations []Violation

	check := func(category string, phrases []string) {
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				violations = append(violations, Violation{Category: category, Phrase: phrase})
			}
		}
	}

	check("diagnosis", diagnosisPhrases)
	check("treatment", treatmentPhrases)
	check("personal_advice", advicePhrases)
	return violations
}
