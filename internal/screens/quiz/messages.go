package quiz

import (
	sess "github.com/abhisek/skillpath/internal/session"
)

// sessionReadyMsg is sent when the session has been created and started.
type sessionReadyMsg struct {
	Session *sess.Session
	Err     error
}

// answerGradedMsg carries the outcome of an asynchronous Submit.
type answerGradedMsg struct {
	Result *sess.Result
	Err    error
}

// sessionFinishedMsg is sent once Finish has persisted the estimates.
type sessionFinishedMsg struct {
	Summary *sess.Summary
	Err     error
}

// sessionAbandonedMsg is sent after an early quit with no answers.
type sessionAbandonedMsg struct{}
