package classifier

const (
	// EndpointClassify is the ledger endpoint label for remote classification calls.
	EndpointClassify = "classify"

	// Confidence at which rule-based results short-circuit the remote path.
	shortCircuitConf = 0.8

	// DefaultThreshold is the default acceptance threshold for remote results.
	DefaultThreshold = 0.7

	// Remote results below this confidence are treated as "nothing found".
	remoteMinConf = 0.5

	classifyTemperature = 0.1
	classifyMaxTokens   = 300
)

// classificationPrompt is the fixed system prompt for the remote backend.
const classificationPrompt = `You are a message classifier for a team chat monitoring system.
Analyze the message and extract structured information.

Content types:
- decision: Team agreed on something ("решили", "договорились", "agreed", "decided")
- task: Action item assigned ("сделай", "надо", "todo", "need to", "should")
- deadline: Time constraint mentioned (date, "завтра", "к пятнице", "by Friday")
- link: Contains URL, repo, document reference
- context: Project description or status update
- requirement: Rule or constraint ("должно", "must", "required")
- none: No actionable content

Respond in JSON format:
{
  "content_type": "decision|task|deadline|link|context|requirement|none",
  "confidence": 0.0-1.0,
  "summary": "1-2 sentence summary in Russian",
  "metadata": {
    "deadline": "extracted date or null",
    "links": ["urls found"],
    "assignee": "mentioned person or null"
  }
}

Rules:
- confidence > 0.8: Clear actionable item
- confidence 0.5-0.8: Possibly relevant, needs review
- confidence < 0.5: Not relevant
- Be concise in summary
- Extract explicit deadlines even in tasks`
