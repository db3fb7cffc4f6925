// Package planner provides test case generators for the planning phase.
package planner

import (
	"context"
	"fmt"

	"github.com/webprobe-dev/webprobe/internal/core"
)

// CatalogGenerator produces test cases from a built-in rule catalog. Each
// requested category contributes a template; candidates cycle through the
// requested categories until the count is met.
type CatalogGenerator struct{}

// NewCatalogGenerator creates a catalog-backed generator.
func NewCatalogGenerator() *CatalogGenerator {
	return &CatalogGenerator{}
}

// Name implements core.Generator.
func (g *CatalogGenerator) Name() string { return "catalog" }

// Generate implements core.Generator. Output is deterministic for a given
// requirements descriptor.
func (g *CatalogGenerator) Generate(ctx context.Context, req Requirements) ([]core.TestCaseDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, core.ErrGeneration(core.CodeGeneratorFailed, "generation canceled").WithCause(err)
	}
	if req.TargetURL == "" {
		return nil, core.ErrGeneration(core.CodeEmptyTargetURL, "target URL is required")
	}
	if req.CandidateCount <= 0 {
		return nil, core.ErrGeneration(core.CodeInvalidCount,
			fmt.Sprintf("candidate count must be positive, got %d", req.CandidateCount))
	}

	categories := req.Categories
	if len(categories) == 0 {
		categories = core.AllCategories()
	}

	cases := make([]core.TestCaseDescriptor, 0, req.CandidateCount)
	for i := 0; i < req.CandidateCount; i++ {
		category := categories[i%len(categories)]
		tmpl := templates[category]
		cases = append(cases, core.TestCaseDescriptor{
			ID:              fmt.Sprintf("TC_%03d", i+1),
			Title:           fmt.Sprintf("%s #%d", tmpl.title, i/len(categories)+1),
			Description:     tmpl.description,
			Category:        category,
			Priority:        priorityFor(i),
			ComplexityScore: 0.3 + 0.1*float64(i%5),
			Steps:           tmpl.steps(req.TargetURL),
			ExpectedResults: map[string]any{
				"page_loaded": true,
				"no_errors":   true,
			},
			ValidationPoints:   tmpl.validationPoints,
			ArtifactsToCapture: []string{"screenshot", "console_log"},
		})
	}
	return cases, nil
}

// Requirements aliases the domain type for call-site readability.
type Requirements = core.Requirements

func priorityFor(i int) core.Priority {
	switch i % 3 {
	case 0:
		return core.PriorityHigh
	case 1:
		return core.PriorityMedium
	default:
		return core.PriorityLow
	}
}

type caseTemplate struct {
	title            string
	description      string
	validationPoints []string
	steps            func(targetURL string) []core.StepDescriptor
}

var templates = map[core.Category]caseTemplate{
	core.CategoryFunctional: {
		title:            "Verify primary navigation flow",
		description:      "Load the page and exercise the main interactive elements.",
		validationPoints: []string{"page title present", "navigation links respond"},
		steps: func(targetURL string) []core.StepDescriptor {
			return []core.StepDescriptor{
				{Action: core.ActionNavigate, Target: targetURL, TimeoutMs: 30000},
				{Action: core.ActionClick, Target: "nav a:first-child", Description: "open first navigation link"},
				{Action: core.ActionWait, Target: "body", TimeoutMs: 5000},
				{Action: core.ActionScreenshot, Target: "viewport"},
			}
		},
	},
	core.CategoryEdgeCase: {
		title:            "Exercise boundary interactions",
		description:      "Drive the page through rapid and out-of-order interactions.",
		validationPoints: []string{"no unhandled errors", "page remains responsive"},
		steps: func(targetURL string) []core.StepDescriptor {
			return []core.StepDescriptor{
				{Action: core.ActionNavigate, Target: targetURL, TimeoutMs: 30000},
				{Action: core.ActionClick, Target: "button", Description: "double activation"},
				{Action: core.ActionClick, Target: "button"},
				{Action: core.ActionDrag, Target: "[draggable]", Source: "body", Description: "drag outside bounds"},
				{Action: core.ActionScreenshot, Target: "viewport"},
			}
		},
	},
	core.CategoryPerformance: {
		title:            "Measure page load performance",
		description:      "Capture timing metrics across a full page load.",
		validationPoints: []string{"load completes under budget"},
		steps: func(targetURL string) []core.StepDescriptor {
			return []core.StepDescriptor{
				{Action: core.ActionPerformanceStart, Target: "page"},
				{Action: core.ActionNavigate, Target: targetURL, TimeoutMs: 60000},
				{Action: core.ActionWait, Target: "body", TimeoutMs: 10000},
				{Action: core.ActionPerformanceEnd, Target: "page"},
			}
		},
	},
	core.CategoryUIValidation: {
		title:            "Validate visual layout",
		description:      "Capture the rendered layout for visual inspection.",
		validationPoints: []string{"layout matches baseline", "no overlapping elements"},
		steps: func(targetURL string) []core.StepDescriptor {
			return []core.StepDescriptor{
				{Action: core.ActionNavigate, Target: targetURL, TimeoutMs: 30000},
				{Action: core.ActionWait, Target: "body", TimeoutMs: 5000},
				{Action: core.ActionScreenshot, Target: "full_page"},
			}
		},
	},
	core.CategoryUnknown: {
		title:            "Probe page behavior",
		description:      "Generic smoke interaction for uncategorized requests.",
		validationPoints: []string{"page loads"},
		steps: func(targetURL string) []core.StepDescriptor {
			return []core.StepDescriptor{
				{Action: core.ActionNavigate, Target: targetURL, TimeoutMs: 30000},
				{Action: core.ActionScreenshot, Target: "viewport"},
			}
		},
	},
}
