package models

// EnforcementStatus is the terminal state of one enforcement evaluation.
type EnforcementStatus int

const (
	EnforcementSkipped EnforcementStatus = iota
	EnforcementEnforced
	EnforcementFailed
)

func (s EnforcementStatus) String() string {
	switch s {
	case EnforcementSkipped:
		return "skipped"
	case EnforcementEnforced:
		return "enforced"
	case EnforcementFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SkipReason explains why a message was not acted on.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipBotAuthor    SkipReason = "bot_author"
	SkipNoGuild      SkipReason = "no_guild"
	SkipNotMonitored SkipReason = "channel_not_monitored"
	SkipNoMatch      SkipReason = "no_match"
)

// EnforcementOutcome is returned for every evaluated message.
type EnforcementOutcome struct {
	Status EnforcementStatus
	Reason SkipReason
	Phrase string
	// Err is set when Status is EnforcementFailed, or when the delete after a successful ban failed.
	Err error
}
