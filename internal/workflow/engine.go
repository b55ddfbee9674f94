// Package workflow implements the staged interview protocol.
package workflow

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/ashvale/coach-labs/internal/domain"
)

// Step identifies a stage of the interview protocol. Transitions are
// strictly sequential; StepCount is the terminal index.
type Step int

const (
	StepIntroduction Step = iota
	StepTechnical
	StepBehavioral
	StepSystemDesign
	StepFeedback
	// StepCount is the index reached after the feedback summary.
	StepCount
)

// String returns the step's wire name.
func (s Step) String() string {
	switch s {
	case StepIntroduction:
		return "introduction"
	case StepTechnical:
		return "technical_assessment"
	case StepBehavioral:
		return "behavioral_questions"
	case StepSystemDesign:
		return "system_design"
	case StepFeedback:
		return "feedback_summary"
	default:
		return "completed"
	}
}

// Engine advances a workflow state one step at a time and selects the
// assistant prompt for each stage. Prompt selection within a stage is the
// only nondeterminism; the rng is injected so tests can pin it.
type Engine struct {
	interviewType InterviewType
	rng           *rand.Rand
}

// NewEngine creates an engine for the given interview type. An unknown
// interview type falls back to the general opening.
func NewEngine(interviewType InterviewType, rng *rand.Rand) *Engine {
	if _, ok := openingPrompts[interviewType]; !ok {
		interviewType = TypeGeneral
	}
	return &Engine{interviewType: interviewType, rng: rng}
}

// Next advances the workflow by exactly one step and returns the assistant
// prompt for the stage that executed. Calling Next on a completed workflow
// is a no-op that re-renders the existing summary.
func (e *Engine) Next(state *domain.WorkflowState) string {
	if state.Completed {
		return renderSummary(state.Assessment)
	}

	switch Step(state.CurrentStep) {
	case StepIntroduction:
		state.CurrentStep++
		return openingPrompts[e.interviewType]

	case StepTechnical:
		level := AssessLevel(state.Responses)
		pool := technicalPrompts[level]
		state.CurrentStep++
		return pool[e.rng.Intn(len(pool))]

	case StepBehavioral:
		state.CurrentStep++
		return behavioralPrompts[e.rng.Intn(len(behavioralPrompts))]

	case StepSystemDesign:
		state.CurrentStep++
		return systemDesignPrompts[e.rng.Intn(len(systemDesignPrompts))]

	case StepFeedback:
		assessment := Score(state.Responses)
		state.Assessment = &assessment
		state.Completed = true
		state.CurrentStep++
		return renderSummary(state.Assessment)

	default:
		// Index can only land here through corrupted state; treat as done.
		state.Completed = true
		return renderSummary(state.Assessment)
	}
}

// AssessLevel classifies skill from free-text responses by counting
// complexity keyword occurrences. Fewer than 2 responses always classifies
// as intermediate regardless of keyword count.
func AssessLevel(responses []string) domain.SkillLevel {
	if len(responses) < 2 {
		return domain.SkillIntermediate
	}

	count := 0
	for _, response := range responses {
		lower := strings.ToLower(response)
		for _, keyword := range complexityKeywords {
			count += strings.Count(lower, keyword)
		}
	}

	switch {
	case count >= 3:
		return domain.SkillAdvanced
	case count >= 1:
		return domain.SkillIntermediate
	default:
		return domain.SkillBeginner
	}
}

// Score computes the feedback assessment from the full response set. Every
// score is a function of response count and average response length,
// clamped to [1,10].
func Score(responses []string) domain.Assessment {
	n := len(responses)
	avgLen := 0.0
	if n > 0 {
		total := 0
		for _, r := range responses {
			total += len(r)
		}
		avgLen = float64(total) / float64(n)
	}
	count := float64(n)

	return domain.Assessment{
		OverallRating: clampScore(count*1.5 + avgLen/100),
		Strengths:     feedbackStrengths,
		Improvements:  feedbackImprovements,
		Technical: domain.TechnicalScores{
			ProblemSolving: clampScore(count * 2),
			CodeQuality:    clampScore(avgLen / 50),
			SystemThinking: clampScore(count * 1.8),
		},
		Communication: domain.CommunicationScores{
			Clarity:    clampScore(avgLen / 80),
			Structure:  clampScore(count * 1.7),
			Engagement: clampScore(count * 1.6),
		},
		Recommendations: feedbackRecommendations,
	}
}

func clampScore(v float64) int {
	score := int(math.Round(v))
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func renderSummary(a *domain.Assessment) string {
	if a == nil {
		empty := Score(nil)
		a = &empty
	}

	var b strings.Builder
	b.WriteString("## Interview Summary\n\n")
	fmt.Fprintf(&b, "**Overall Performance:** %d/10\n\n", a.OverallRating)

	b.WriteString("### Strengths:\n")
	for _, s := range a.Strengths {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\n### Areas for Improvement:\n")
	for _, s := range a.Improvements {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\n### Technical Skills Assessment:\n")
	fmt.Fprintf(&b, "- Problem Solving: %d/10\n", a.Technical.ProblemSolving)
	fmt.Fprintf(&b, "- Code Quality: %d/10\n", a.Technical.CodeQuality)
	fmt.Fprintf(&b, "- System Thinking: %d/10\n", a.Technical.SystemThinking)

	b.WriteString("\n### Communication Skills:\n")
	fmt.Fprintf(&b, "- Clarity: %d/10\n", a.Communication.Clarity)
	fmt.Fprintf(&b, "- Structure: %d/10\n", a.Communication.Structure)
	fmt.Fprintf(&b, "- Engagement: %d/10\n", a.Communication.Engagement)

	b.WriteString("\n### Recommendations:\n")
	for _, s := range a.Recommendations {
		fmt.Fprintf(&b, "• %s\n", s)
	}

	b.WriteString("\nGreat job completing the mock interview! Remember, practice makes perfect. Feel free to start another session anytime.")
	return b.String()
}
