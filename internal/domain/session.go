package domain

import (
	"time"
)

// Skill levels assigned to a user profile.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// UserProfile holds coaching-relevant facts about a user.
type UserProfile struct {
	SkillLevel SkillLevel `json:"skillLevel"`
	FocusAreas []string   `json:"focusAreas"`
	Weaknesses []string   `json:"weaknesses"`
	Strengths  []string   `json:"strengths"`
}

// DefaultProfile returns the profile assigned to a freshly created session.
func DefaultProfile() UserProfile {
	return UserProfile{
		SkillLevel: SkillIntermediate,
		FocusAreas: []string{},
		Weaknesses: []string{},
		Strengths:  []string{},
	}
}

// TechnicalScores are the technical sub-scores of a feedback summary.
type TechnicalScores struct {
	ProblemSolving int `json:"problemSolving"`
	CodeQuality    int `json:"codeQuality"`
	SystemThinking int `json:"systemThinking"`
}

// CommunicationScores are the communication sub-scores of a feedback summary.
type CommunicationScores struct {
	Clarity    int `json:"clarity"`
	Structure  int `json:"structure"`
	Engagement int `json:"engagement"`
}

// Assessment is the structured performance summary produced at the end of an
// interview workflow. All scores are clamped to [1,10].
type Assessment struct {
	OverallRating   int                 `json:"overallRating"`
	Strengths       []string            `json:"strengths"`
	Improvements    []string            `json:"improvements"`
	Technical       TechnicalScores     `json:"technical"`
	Communication   CommunicationScores `json:"communication"`
	Recommendations []string            `json:"recommendations"`
}

// WorkflowState tracks a user's position in the staged interview protocol.
type WorkflowState struct {
	CurrentStep int         `json:"currentStepIndex"`
	Responses   []string    `json:"responses"`
	Assessment  *Assessment `json:"assessmentData,omitempty"`
	Completed   bool        `json:"completed"`
}

// SessionRecord is the full durable state for one user's session. It is
// persisted as a single blob; every mutation rewrites the whole record.
type SessionRecord struct {
	UserID         string         `json:"userId"`
	Messages       []Message      `json:"messages"`
	UserProfile    UserProfile    `json:"userProfile"`
	SessionStarted time.Time      `json:"sessionStarted"`
	LastActivity   time.Time      `json:"lastActivity"`
	NextMessageID  int64          `json:"nextMessageId"`
	Workflow       *WorkflowState `json:"workflowState,omitempty"`
}

// NewSessionRecord creates a fresh record seeded with an assistant greeting.
func NewSessionRecord(userID, greeting string, now time.Time) *SessionRecord {
	r := &SessionRecord{
		UserID:         userID,
		Messages:       []Message{},
		UserProfile:    DefaultProfile(),
		SessionStarted: now,
		LastActivity:   now,
		NextMessageID:  1,
	}
	r.Append(RoleAssistant, greeting, now)
	return r
}

// Append adds a message to the conversation and returns it. Message IDs are
// monotonically increasing within the session.
func (r *SessionRecord) Append(role, content string, now time.Time) Message {
	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: now,
		MessageID: r.NextMessageID,
	}
	r.NextMessageID++
	r.Messages = append(r.Messages, msg)
	return msg
}

// Recent returns the last n messages, oldest first. The window is taken
// regardless of role distribution.
func (r *SessionRecord) Recent(n int) []Message {
	if n >= len(r.Messages) {
		return r.Messages
	}
	return r.Messages[len(r.Messages)-n:]
}

// Touch updates the last-activity timestamp.
func (r *SessionRecord) Touch(now time.Time) {
	r.LastActivity = now
}
