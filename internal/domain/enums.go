package domain

// Closed sets flowing across the API boundary. Anything outside these is a
// validation error, never a silent no-op.

type AttentionSignal string

const (
	SignalActive      AttentionSignal = "active"
	SignalIdle        AttentionSignal = "idle"
	SignalDistraction AttentionSignal = "distraction"
	SignalReturn      AttentionSignal = "return"
	SignalProgress    AttentionSignal = "progress"
)

func (s AttentionSignal) Valid() bool {
	switch s {
	case SignalActive, SignalIdle, SignalDistraction, SignalReturn, SignalProgress:
		return true
	default:
		return false
	}
}

type FeedbackEventType string

const (
	EventCorrect   FeedbackEventType = "correct"
	EventIncorrect FeedbackEventType = "incorrect"
	EventStreak    FeedbackEventType = "streak"
	EventLevelUp   FeedbackEventType = "level_up"
	EventFlow      FeedbackEventType = "flow"
)

func (e FeedbackEventType) Valid() bool {
	switch e {
	case EventCorrect, EventIncorrect, EventStreak, EventLevelUp, EventFlow:
		return true
	default:
		return false
	}
}

type ActivityType string

const (
	ActivitySessionComplete ActivityType = "session_complete"
	ActivityItemComplete    ActivityType = "item_complete"
	ActivityXPEarned        ActivityType = "xp_earned"
	ActivityDailyLogin      ActivityType = "daily_login"
)

func (a ActivityType) Valid() bool {
	switch a {
	case ActivitySessionComplete, ActivityItemComplete, ActivityXPEarned, ActivityDailyLogin:
		return true
	default:
		return false
	}
}

type MomentType string

const (
	MomentWaiting MomentType = "waiting"
	MomentCommute MomentType = "commute"
	MomentBreak   MomentType = "break"
)

func (m MomentType) Valid() bool {
	switch m {
	case MomentWaiting, MomentCommute, MomentBreak:
		return true
	default:
		return false
	}
}

type InteractionMode string

const (
	InteractionSwipeRead InteractionMode = "swipe_read"
	InteractionQuiz      InteractionMode = "quiz"
	InteractionFlashcard InteractionMode = "flashcard"
)
