package llm

import "strings"

// LocalResponder is the deterministic, fully offline fallback. It matches
// the prompt's clinical topic against a small fixed set of safety-compliant
// educational templates and never fails.
type LocalResponder struct{}

// NewLocalResponder creates the canned-template responder.
func NewLocalResponder() *LocalResponder {
	return &LocalResponder{}
}

// Respond returns the educational template for the prompt's topic, falling
// back to a generic template when no topic matches.
func (l *LocalResponder) Respond(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "cholesterol"):
		return cholesterolTemplate
	case strings.Contains(lower, "blood pressure"), strings.Contains(lower, "hypertension"):
		return bloodPressureTemplate
	case strings.Contains(lower, "diabetes"), strings.Contains(lower, "glucose"), strings.Contains(lower, "blood sugar"):
		return glucoseTemplate
	default:
		return genericTemplate
	}
}

const cholesterolTemplate = `Cholesterol is a waxy substance found in your blood. Your body needs some cholesterol to make hormones and digest fats. When cholesterol levels are higher than normal (above 240 mg/dL), it can increase the risk of heart disease.

High cholesterol can accumulate in artery walls, forming plaques that narrow blood vessels - a process called atherosclerosis.

GENERAL INFORMATION about cholesterol management:
- Dietary choices (like fiber and omega-3 sources) are typically discussed with healthcare providers
- Physical activity is generally recommended by health authorities
- Weight management is part of most health recommendations
- Many people benefit from medications prescribed by their doctors

For personalized guidance on managing your cholesterol, schedule a consultation with your healthcare provider. They can assess your individual risk factors and discuss appropriate options for your situation.`

const bloodPressureTemplate = `Blood pressure is the force of blood pushing against artery walls. It's measured in two numbers: systolic (when heart beats) and diastolic (when heart rests).

Normal blood pressure is generally less than 120/80 mmHg. Higher readings may indicate elevated blood pressure, which some health authorities suggest monitoring.

GENERAL INFORMATION about blood pressure management:
- The DASH diet is often discussed in health literature
- Regular aerobic activity is widely recommended by health organizations
- Weight management is part of most wellness approaches
- Stress reduction techniques are generally discussed
- Reducing sodium intake is commonly recommended

Your healthcare provider can evaluate your specific blood pressure readings and discuss management options that may be appropriate for your individual situation.`

const glucoseTemplate = `Diabetes is a condition where blood glucose levels are higher than normal. There are different types, and high blood sugar can affect various body systems over time.

GENERAL INFORMATION about glucose management:
- Nutritional choices involving lower glycemic foods are often discussed in health literature
- Physical activity is widely recommended by health authorities
- Weight management is part of most health recommendations
- Blood glucose monitoring helps track patterns
- Many people use medications to help manage glucose levels

For an understanding of your specific glucose readings and management strategies suited to your situation, consult with your healthcare provider or a diabetes educator.`

const genericTemplate = `Based on the medical analysis provided, here is general educational information:

UNDERSTANDING YOUR RESULTS:
- Test results are compared against normal reference ranges
- Abnormal results may indicate areas worth discussing with your healthcare provider
- Some values may be borderline and require monitoring over time

GENERAL RECOMMENDATIONS:
1. **Follow-up Care**: Schedule regular check-ups with your healthcare provider to monitor your health
2. **General Wellness**: Healthy lifestyle choices often include balanced nutrition and physical activity
3. **Monitoring**: Tracking relevant health metrics can be useful information for your provider
4. **Education**: Learning about your health condition helps you have informed conversations
5. **Support**: Healthcare providers can connect you with resources and support options

For personalized medical guidance based on your specific results and health situation, consult with your healthcare provider. They can explain what your results mean for you individually and discuss appropriate next steps.`
