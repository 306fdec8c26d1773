package filter

// Minimum meaningful message length after trimming.
const MinLength = 10

// DefaultMaxLength is the default upper bound for processable messages.
const DefaultMaxLength = 2000

// Rejection reasons returned by ShouldProcess.
const (
	ReasonEmpty   = "empty"
	ReasonNoise   = "noise"
	ReasonTooLong = "too_long"
)

// noisePatterns match messages that are pure noise. Each pattern is applied
// to the entire trimmed message, case-insensitively.
var noisePatterns = []string{
	`^\s*[+✓✅✔️]\s*$`,     // just "+" or a checkmark
	`^\s*[оo][кk]\s*$`,    // just "ок" / "ok"
	`^\s*лол\s*$`,         // just "лол"
	`^\s*ха+\s*$`,         // "ха", "хааа"
	`^\s*спасибо?\s*$`,    // just "спасибо"
	`^\s*пожалуйста\s*$`,  //
	`^\s*👍+\s*$`,          // just thumbs up
	`^\s*😂+\s*$`,          // just laughs
}

// commandPatterns match bot commands that carry nothing worth extracting.
var commandPatterns = []string{
	`^/status`,
	`^/api`,
	`^/tasks`,
	`^/help`,
	`^/start`,
}
