package core

// Priority classifies how important a test case is.
type Priority string

const (
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityUnknown Priority = "unknown"
)

// ParsePriority converts a string to a Priority, falling back to
// PriorityUnknown for values outside the closed set.
func ParsePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityUnknown
	}
}

// Action identifies what a test step does against the target page.
type Action string

const (
	ActionNavigate         Action = "navigate"
	ActionClick            Action = "click"
	ActionDrag             Action = "drag"
	ActionWait             Action = "wait"
	ActionScreenshot       Action = "screenshot"
	ActionPerformanceStart Action = "performance_start"
	ActionPerformanceEnd   Action = "performance_end"
	ActionUnknown          Action = "unknown"
)

// ParseAction converts a string to an Action, falling back to ActionUnknown
// so dispatch over actions stays exhaustive.
func ParseAction(s string) Action {
	switch Action(s) {
	case ActionNavigate, ActionClick, ActionDrag, ActionWait,
		ActionScreenshot, ActionPerformanceStart, ActionPerformanceEnd:
		return Action(s)
	default:
		return ActionUnknown
	}
}

// Category groups test cases for generation requests and reliability analysis.
type Category string

const (
	CategoryFunctional   Category = "functional"
	CategoryEdgeCase     Category = "edge_case"
	CategoryPerformance  Category = "performance"
	CategoryUIValidation Category = "ui_validation"
	CategoryUnknown      Category = "unknown"
)

// AllCategories returns the closed set of known categories.
func AllCategories() []Category {
	return []Category{CategoryFunctional, CategoryEdgeCase, CategoryPerformance, CategoryUIValidation}
}

// ParseCategory converts a string to a Category, falling back to
// CategoryUnknown for values outside the closed set.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryFunctional, CategoryEdgeCase, CategoryPerformance, CategoryUIValidation:
		return Category(s)
	default:
		return CategoryUnknown
	}
}

// StepDescriptor describes a single interaction within a test case.
type StepDescriptor struct {
	Action      Action `json:"action"`
	Target      string `json:"target"`
	Source      string `json:"source,omitempty"`
	TimeoutMs   int    `json:"timeout_ms,omitempty"`
	Description string `json:"description,omitempty"`
}

// TestCaseDescriptor is a generated candidate test case. Descriptors are
// immutable once produced by the generator; the ranker and executor only
// read them.
type TestCaseDescriptor struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description,omitempty"`
	Category           Category         `json:"category"`
	Priority           Priority         `json:"priority"`
	ComplexityScore    float64          `json:"complexity_score"`
	Steps              []StepDescriptor `json:"steps"`
	ExpectedResults    map[string]any   `json:"expected_results,omitempty"`
	ValidationPoints   []string         `json:"validation_points,omitempty"`
	ArtifactsToCapture []string         `json:"artifacts_to_capture,omitempty"`
}

// Requirements describes what the generator should produce candidates for.
type Requirements struct {
	TargetURL      string     `json:"target_url"`
	CandidateCount int        `json:"candidate_count"`
	Categories     []Category `json:"categories"`
}
