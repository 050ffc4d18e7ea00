package conversation

import (
	"strings"

	"interviewcoach/models"
)

// Keyword sets for the deterministic intent classifier. Matching is
// lowercase substring containment; classification order is fixed and code
// submission always wins.
var (
	codeKeywords          = []string{"def ", "class ", "function"}
	hintKeywords          = []string{"hint", "help", "stuck", "don't know", "clue"}
	clarificationKeywords = []string{"what", "how", "explain", "clarify", "understand"}
	repeatKeywords        = []string{"repeat", "again", "say that again", "what did you say"}
	readyKeywords         = []string{"ready", "start", "begin", "let's go", "ok"}
	finishKeywords        = []string{"done", "finish", "end", "complete", "stop"}
)

func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

// classifyIntent maps a raw user message onto an intent. Code-fence or
// definition-keyword detection takes precedence over every keyword set, so a
// fenced snippet that also mentions "hint" still classifies as a submission.
func classifyIntent(message string) models.UserIntent {
	lower := strings.ToLower(strings.TrimSpace(message))

	if strings.Contains(message, "```") || containsAny(lower, codeKeywords) {
		return models.IntentSubmitCode
	}

	switch {
	case containsAny(lower, hintKeywords):
		return models.IntentRequestHint
	case containsAny(lower, clarificationKeywords):
		return models.IntentAskClarification
	case containsAny(lower, repeatKeywords):
		return models.IntentRequestRepeat
	case containsAny(lower, readyKeywords):
		return models.IntentReadyToStart
	case containsAny(lower, finishKeywords):
		return models.IntentFinishInterview
	}

	return models.IntentGeneralMessage
}

// extractCode pulls the first fenced block out of a message. Without fences
// the whole message is treated as code when it carries structural keywords.
func extractCode(message string) string {
	if strings.Contains(message, "```") {
		parts := strings.Split(message, "```")
		if len(parts) >= 3 {
			return strings.TrimSpace(parts[1])
		}
	}

	lower := strings.ToLower(message)
	if containsAny(lower, []string{"def ", "class ", "function", "return", "if ", "for "}) {
		return strings.TrimSpace(message)
	}

	return strings.TrimSpace(message)
}

// detectLanguage sniffs the language family from code keywords.
func detectLanguage(code string) string {
	lower := strings.ToLower(code)

	switch {
	case strings.Contains(lower, "def ") || strings.Contains(lower, "import "):
		return "python"
	case strings.Contains(lower, "function") || strings.Contains(lower, "var ") || strings.Contains(lower, "let "):
		return "javascript"
	case strings.Contains(lower, "public class") || strings.Contains(lower, "public static"):
		return "java"
	case strings.Contains(lower, "#include") || strings.Contains(lower, "int main"):
		return "cpp"
	default:
		return "unknown"
	}
}

// responseTypeFor derives the response kind from the classified intent and
// the current phase.
func responseTypeFor(intent models.UserIntent, phase models.InterviewPhase) models.ResponseType {
	switch {
	case intent == models.IntentSubmitCode:
		return models.ResponseCodeReview
	case intent == models.IntentRequestHint:
		return models.ResponseHintProvision
	case phase == models.PhaseProblemIntroduction:
		return models.ResponseProblemIntroduction
	default:
		return models.ResponseEncouragement
	}
}
