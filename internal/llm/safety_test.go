package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateResponseDetectsDiagnosis(t *testing.T) {
	violations := ValidateResponse("Based on these results, you have diabetes.")
	assert.NotEmpty(t, violations)
	assert.Equal(t, "diagnosis", violations[0].Category)
}

func TestValidateResponseDetectsTreatment(t *testing.T) {
	violations := ValidateResponse("You should take aspirin daily.")
	assert.NotEmpty(t, violations)
	assert.Equal(t, "treatment", violations[0].Category)
}

func TestValidateResponseDetectsPersonalAdvice(t *testing.T) {
	violations := ValidateResponse("Here's what you should do: avoid these foods.")
	assert.Len(t, violations, 2)
	for _, v := range violations {
		assert.Equal(t, "personal_advice", v.Category)
	}
}

func TestValidateResponseCaseInsensitive(t *testing.T) {
	violations := ValidateResponse("DIAGNOSIS: hypertension")
	assert.NotEmpty(t, violations)
}

func TestValidateResponseCleanText(t *testing.T) {
	clean := "Cholesterol is a waxy substance found in your blood. " +
		"For personalized guidance, consult your healthcare provider."
	assert.Empty(t, ValidateResponse(clean))
}

func TestLocalResponderTopics(t *testing.T) {
	local := NewLocalResponder()

	tests := []struct {
		prompt string
		want   string
	}{
		{"what does my cholesterol reading mean?", "Cholesterol is a waxy substance"},
		{"explain blood pressure numbers", "Blood pressure is the force"},
		{"is hypertension serious?", "Blood pressure is the force"},
		{"my glucose is high", "Diabetes is a condition"},
		{"what is blood sugar?", "Diabetes is a condition"},
		{"tell me about my liver panel", "general educational information"},
	}

	for _, tt := range tests {
		assert.Contains(t, local.Respond(tt.prompt), tt.want, "prompt %q", tt.prompt)
	}
}

func TestLocalResponderOutputIsSafe(t *testing.T) {
	local := NewLocalResponder()
	for _, prompt := range []string{"cholesterol", "blood pressure", "glucose", "anything else"} {
		assert.Empty(t, ValidateResponse(local.Respond(prompt)), "prompt %q", prompt)
	}
}
