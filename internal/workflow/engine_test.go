package workflow

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ashvale/coach-labs/internal/domain"
)

func newTestEngine(t InterviewType, seed int64) *Engine {
	return NewEngine(t, rand.New(rand.NewSource(seed)))
}

func TestNextAdvancesOneStepAtATime(t *testing.T) {
	e := newTestEngine(TypeGeneral, 1)
	state := &domain.WorkflowState{Responses: []string{}}

	for want := 1; want <= int(StepCount); want++ {
		reply := e.Next(state)
		if reply == "" {
			t.Fatalf("Step %d produced empty prompt", want-1)
		}
		if state.CurrentStep != want {
			t.Fatalf("Expected step index %d, got %d", want, state.CurrentStep)
		}
	}

	if !state.Completed {
		t.Error("Expected workflow completed after final step")
	}
	if state.CurrentStep != int(StepCount) {
		t.Errorf("Expected terminal index %d, got %d", int(StepCount), state.CurrentStep)
	}
}

func TestNextOnCompletedWorkflowIsNoOp(t *testing.T) {
	e := newTestEngine(TypeGeneral, 1)
	state := &domain.WorkflowState{Responses: []string{"a", "b", "c"}}
	for i := 0; i < int(StepCount); i++ {
		e.Next(state)
	}

	summary := e.Next(state)
	again := e.Next(state)

	if summary != again {
		t.Error("Expected identical summary on repeated calls after completion")
	}
	if state.CurrentStep != int(StepCount) {
		t.Errorf("Expected index to stay at %d, got %d", int(StepCount), state.CurrentStep)
	}
}

func TestIntroductionPromptByInterviewType(t *testing.T) {
	tests := []struct {
		interviewType InterviewType
		wantSubstring string
	}{
		{TypeGeneral, "what type of role you're preparing for"},
		{TypeFrontend, "frontend role"},
		{TypeBackend, "backend roles"},
		{TypeFullstack, "full-stack candidate"},
		{InterviewType("unknown"), "what type of role you're preparing for"},
	}

	for _, tt := range tests {
		e := newTestEngine(tt.interviewType, 1)
		state := &domain.WorkflowState{}
		reply := e.Next(state)
		if !strings.Contains(reply, tt.wantSubstring) {
			t.Errorf("Type %q: expected opening containing %q, got %q", tt.interviewType, tt.wantSubstring, reply)
		}
	}
}

func TestTechnicalPromptSelectionIsDeterministicWithSeed(t *testing.T) {
	state1 := &domain.WorkflowState{CurrentStep: int(StepTechnical), Responses: []string{"a", "b"}}
	state2 := &domain.WorkflowState{CurrentStep: int(StepTechnical), Responses: []string{"a", "b"}}

	first := newTestEngine(TypeGeneral, 42).Next(state1)
	second := newTestEngine(TypeGeneral, 42).Next(state2)

	if first != second {
		t.Errorf("Expected identical selection for identical seeds, got %q vs %q", first, second)
	}
}

func TestTechnicalPromptMatchesAssessedLevel(t *testing.T) {
	responses := []string{
		"I designed a distributed architecture",
		"with heavy optimization of the scalable path",
	}
	state := &domain.WorkflowState{CurrentStep: int(StepTechnical), Responses: responses}
	reply := newTestEngine(TypeGeneral, 7).Next(state)

	found := false
	for _, p := range technicalPrompts[domain.SkillAdvanced] {
		if p == reply {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected an advanced prompt, got %q", reply)
	}
}

func TestAssessLevel(t *testing.T) {
	tests := []struct {
		name      string
		responses []string
		want      domain.SkillLevel
	}{
		{"no responses", nil, domain.SkillIntermediate},
		{"one response", []string{"algorithm optimization distributed"}, domain.SkillIntermediate},
		{"two plain responses", []string{"hello", "world"}, domain.SkillBeginner},
		{"one keyword", []string{"I like algorithm problems", "hello"}, domain.SkillIntermediate},
		{"two keywords", []string{"algorithm", "optimization"}, domain.SkillIntermediate},
		{"three keywords", []string{"algorithm optimization", "distributed systems"}, domain.SkillAdvanced},
		{"case insensitive", []string{"ALGORITHM Architecture", "Scalable design"}, domain.SkillAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AssessLevel(tt.responses); got != tt.want {
				t.Errorf("AssessLevel(%v) = %q, want %q", tt.responses, got, tt.want)
			}
		})
	}
}

func TestScoreClampsToRange(t *testing.T) {
	long := strings.Repeat("x", 5000)
	many := make([]string, 50)
	for i := range many {
		many[i] = long
	}

	for name, responses := range map[string][]string{
		"empty": nil,
		"tiny":  {"a"},
		"huge":  many,
	} {
		a := Score(responses)
		scores := []int{
			a.OverallRating,
			a.Technical.ProblemSolving, a.Technical.CodeQuality, a.Technical.SystemThinking,
			a.Communication.Clarity, a.Communication.Structure, a.Communication.Engagement,
		}
		for _, s := range scores {
			if s < 1 || s > 10 {
				t.Errorf("%s: score %d out of [1,10]", name, s)
			}
		}
	}
}

func TestScoreFormulas(t *testing.T) {
	// 4 responses of 200 chars: avgLen=200.
	responses := make([]string, 4)
	for i := range responses {
		responses[i] = strings.Repeat("a", 200)
	}
	a := Score(responses)

	if a.OverallRating != 8 { // round(4*1.5 + 200/100) = 8
		t.Errorf("Expected overall 8, got %d", a.OverallRating)
	}
	if a.Technical.ProblemSolving != 8 { // round(4*2) = 8
		t.Errorf("Expected problem solving 8, got %d", a.Technical.ProblemSolving)
	}
	if a.Technical.CodeQuality != 4 { // round(200/50) = 4
		t.Errorf("Expected code quality 4, got %d", a.Technical.CodeQuality)
	}
	if a.Technical.SystemThinking != 7 { // round(4*1.8) = 7
		t.Errorf("Expected system thinking 7, got %d", a.Technical.SystemThinking)
	}
	if a.Communication.Clarity != 3 { // round(200/80) = 3
		t.Errorf("Expected clarity 3, got %d", a.Communication.Clarity)
	}
	if a.Communication.Structure != 7 { // round(4*1.7) = 7
		t.Errorf("Expected structure 7, got %d", a.Communication.Structure)
	}
	if a.Communication.Engagement != 6 { // round(4*1.6) = 6
		t.Errorf("Expected engagement 6, got %d", a.Communication.Engagement)
	}
}

func TestFeedbackSummaryRendering(t *testing.T) {
	e := newTestEngine(TypeGeneral, 1)
	state := &domain.WorkflowState{CurrentStep: int(StepFeedback), Responses: []string{"one", "two"}}

	summary := e.Next(state)

	if !strings.Contains(summary, "## Interview Summary") {
		t.Error("Expected summary header")
	}
	if !strings.Contains(summary, "Overall Performance:") {
		t.Error("Expected overall rating line")
	}
	if state.Assessment == nil {
		t.Fatal("Expected assessment to be stored")
	}
	if !state.Completed {
		t.Error("Expected completed flag")
	}
}
