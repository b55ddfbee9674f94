package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ashvale/coach-labs/internal/domain"
	"github.com/ashvale/coach-labs/internal/gen"
	"github.com/ashvale/coach-labs/internal/workflow"
	"github.com/prometheus/client_golang/prometheus"
)

const systemPrompt = `You are an expert software engineering interview coach. Your role is to:
1. Conduct mock interviews with users
2. Ask thoughtful questions on algorithms, data structures, system design, or behavioral topics
3. Provide encouraging yet constructive feedback
4. Adapt questions based on the user's responses
5. Keep responses concise but helpful

Current session context: The user is practicing for technical interviews.`

// FallbackReply is substituted when the generation backend fails outright.
const FallbackReply = "I'm experiencing some technical difficulties. Let me try to help you in a different way. Could you tell me more about what you'd like to practice?"

// RetryReply is substituted when the backend answers with empty text.
const RetryReply = "I'm having trouble generating a response right now. Could you please try again?"

// contextWindow is the number of recent stored messages forwarded to the
// generation backend. Taken regardless of role distribution.
const contextWindow = 5

// Responder produces the next assistant turn for a session. It never fails:
// generation problems are absorbed into fallback text so a conversation
// cannot hard-fail because the model did.
type Responder interface {
	Respond(ctx context.Context, record *domain.SessionRecord, userMessage string) string
}

// ChatResponder is the plain conversational strategy: it forwards a bounded
// window of recent messages to the generation backend.
type ChatResponder struct {
	generator gen.Generator
	params    gen.Params
	timeout   time.Duration
	fallbacks prometheus.Counter // nil-safe
}

// NewChatResponder creates the conversational responder. The fallbacks
// counter may be nil.
func NewChatResponder(generator gen.Generator, timeout time.Duration, fallbacks prometheus.Counter) *ChatResponder {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatResponder{
		generator: generator,
		params:    gen.DefaultParams(),
		timeout:   timeout,
		fallbacks: fallbacks,
	}
}

// Respond implements Responder. The record already contains the appended
// user message, so the window covers it.
func (r *ChatResponder) Respond(ctx context.Context, record *domain.SessionRecord, userMessage string) string {
	window := record.Recent(contextWindow)
	messages := make([]domain.Message, 0, len(window)+1)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, window...)

	genCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	text, err := r.generator.Generate(genCtx, messages, r.params)
	if err != nil {
		slog.Warn("Generation failed, substituting fallback", "user_id", record.UserID, "error", err)
		if r.fallbacks != nil {
			r.fallbacks.Inc()
		}
		if errors.Is(err, gen.ErrEmptyCompletion) {
			return RetryReply
		}
		return FallbackReply
	}
	return text
}

// WorkflowResponder drives the staged interview protocol instead of free
// conversation. A session uses either this or ChatResponder for its whole
// lifetime, never both.
type WorkflowResponder struct {
	engine      *workflow.Engine
	completions prometheus.Counter // nil-safe
}

// NewWorkflowResponder creates the staged-interview responder. The
// completions counter may be nil.
func NewWorkflowResponder(engine *workflow.Engine, completions prometheus.Counter) *WorkflowResponder {
	return &WorkflowResponder{engine: engine, completions: completions}
}

// Respond implements Responder. The user message is recorded as a workflow
// response before the engine advances, so later stages can assess it.
func (r *WorkflowResponder) Respond(ctx context.Context, record *domain.SessionRecord, userMessage string) string {
	if record.Workflow == nil {
		record.Workflow = &domain.WorkflowState{Responses: []string{}}
	}
	wasCompleted := record.Workflow.Completed
	if !wasCompleted {
		record.Workflow.Responses = append(record.Workflow.Responses, userMessage)
	}
	reply := r.engine.Next(record.Workflow)

	if record.Workflow.Completed && !wasCompleted {
		if r.completions != nil {
			r.completions.Inc()
		}
		slog.Info("Interview workflow completed", "user_id", record.UserID)
	}
	if record.Workflow.Completed && record.Workflow.Assessment != nil {
		record.UserProfile.SkillLevel = workflow.AssessLevel(record.Workflow.Responses)
		record.UserProfile.Strengths = record.Workflow.Assessment.Strengths
		record.UserProfile.Weaknesses = record.Workflow.Assessment.Improvements
	}
	return reply
}
