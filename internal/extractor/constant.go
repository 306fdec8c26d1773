package extractor

// Scoring parameters for the additive trigger heuristic.
const (
	triggerScore   = 0.3 // contribution of a single matching trigger
	multiBoostOver = 0.6 // score above which the agreement boost applies
	multiBoost     = 0.2
	extractMinConf = 0.5 // minimum top-score confidence to emit an item

	summaryLimit = 150 // max content length before the prefix
)

// triggerEntry binds a content type to its trigger substrings.
// Declaration order is the tie-break for equal scores.
type triggerEntry struct {
	Type     ContentType
	Triggers []string
}

// Trigger words for classification (Russian + English).
var triggerTable = []triggerEntry{
	{TypeDecision, []string{
		"решили", "принято", "будем", "договорились", "оговорили",
		"decided", "agreed", "let's", "let us", "conclusion",
	}},
	{TypeTask, []string{
		"сделай", "надо", "нужно", "задача", "todo", "task",
		"do", "make", "create", "implement", "add",
		"прикрути", "внедри", "добавь", "обнови",
	}},
	{TypeDeadline, []string{
		"к ", "до ", "дедлайн", "срок", "deadline", "by ",
		"пятница", "понедельник", "вторник", "среда", "четверг", "суббота", "воскресенье",
		"tomorrow", "today", "next week", "monday", "friday",
	}},
	{TypeLink, []string{
		"http", "github.com", "gitlab", "docs.", "notion.", "figma.com",
		"ссылка", "репо", "документ", "таблица",
	}},
	{TypeContext, []string{
		"строим", "делаем", "проект", "система", "продукт",
		"building", "project", "system", "product", "we are",
	}},
	{TypeRequirement, []string{
		"требование", "правило", "должно", "нужно поддерживать",
		"requirement", "must", "should", "rule", "support",
	}},
}

// Display prefixes per content type.
var prefixes = map[ContentType]string{
	TypeDecision:    "[Решение] ",
	TypeTask:        "[Задача] ",
	TypeDeadline:    "[Срок] ",
	TypeLink:        "[Ссылка] ",
	TypeContext:     "[Контекст] ",
	TypeRequirement: "[Требование] ",
}

// Prefix returns the localized display prefix for a content type.
func Prefix(t ContentType) string {
	return prefixes[t]
}
