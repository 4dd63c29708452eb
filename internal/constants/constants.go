package constants

// Context keys for values set by the auth middleware
const (
	ContextKeySubject = "subject_id"
	ContextKeyEmail   = "subject_email"
	ContextKeyName    = "subject_name"
)

// Limits for request validation
const (
	MinFamilyNameLength = 2
	MaxEmojiLength      = 2
)

// DefaultRewardEmoji is used when a reward is created without an emoji.
const DefaultRewardEmoji = "🎁"
