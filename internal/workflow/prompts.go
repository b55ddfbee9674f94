package workflow

import "github.com/ashvale/coach-labs/internal/domain"

// InterviewType selects the opening prompt for a staged interview.
type InterviewType string

const (
	TypeGeneral   InterviewType = "general"
	TypeFrontend  InterviewType = "frontend"
	TypeBackend   InterviewType = "backend"
	TypeFullstack InterviewType = "fullstack"
)

var openingPrompts = map[InterviewType]string{
	TypeGeneral:   "Hello! I'm your AI Interview Coach. To provide the best coaching experience, could you tell me what type of role you're preparing for and your experience level?",
	TypeFrontend:  "Welcome! I see you're preparing for a frontend role. Let's start by discussing your experience with JavaScript frameworks. Which ones have you worked with?",
	TypeBackend:   "Great! For backend roles, let's begin with your experience in system architecture. Can you describe a complex system you've designed or worked on?",
	TypeFullstack: "Excellent! As a full-stack candidate, let's explore both your frontend and backend capabilities. What's your preferred tech stack and why?",
}

var technicalPrompts = map[domain.SkillLevel][]string{
	domain.SkillBeginner: {
		"Let's start with a simple algorithm. Can you explain how you would reverse a string?",
		"What's the difference between let, const, and var in JavaScript?",
		"How would you find the largest number in an array?",
	},
	domain.SkillIntermediate: {
		"Can you implement a function to find the first non-repeating character in a string?",
		"Explain the concept of closures and provide an example.",
		"How would you design a simple cache with TTL (time-to-live)?",
	},
	domain.SkillAdvanced: {
		"Design and implement a LRU cache with O(1) operations.",
		"Explain how you would handle race conditions in a distributed system.",
		"Implement a function to serialize and deserialize a binary tree.",
	},
}

var behavioralPrompts = []string{
	"Tell me about a time when you had to work with a difficult team member. How did you handle the situation?",
	"Describe a challenging project you worked on. What made it challenging and how did you overcome the obstacles?",
	"Can you give me an example of when you had to learn a new technology quickly? How did you approach it?",
	"Tell me about a time when you disagreed with a technical decision made by your team or manager.",
	"Describe a situation where you had to debug a complex issue. Walk me through your process.",
}

var systemDesignPrompts = []string{
	"Let's do a system design exercise. How would you design a URL shortener like bit.ly? Walk me through your approach.",
	"Design a chat application that can handle millions of users. What are the key components and challenges?",
	"How would you design a recommendation system for an e-commerce platform?",
	"Design a distributed cache system. What are the trade-offs you'd consider?",
	"How would you design a real-time collaborative document editor like Google Docs?",
}

// complexityKeywords drive the skill-level heuristic: total occurrences
// across all responses decide the classification.
var complexityKeywords = []string{"algorithm", "optimization", "distributed", "scalable", "architecture"}

var feedbackStrengths = []string{
	"Good communication skills",
	"Thoughtful approach to problem-solving",
	"Adequate technical knowledge",
}

var feedbackImprovements = []string{
	"Consider more edge cases in solutions",
	"Practice explaining complex concepts more clearly",
	"Work on system design fundamentals",
}

var feedbackRecommendations = []string{
	"Practice more algorithm problems on LeetCode",
	"Study system design patterns",
	"Work on explaining your thought process clearly",
	"Practice behavioral questions using the STAR method",
}
