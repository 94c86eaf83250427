package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SkillEstimate is one skill's estimate inside a snapshot.
type SkillEstimate struct {
	SkillID  string `json:"skill_id"`
	Estimate int    `json:"estimate"`
}

// SnapshotData captures the final estimates of one session.
type SnapshotData struct {
	Version   int             `json:"version"`
	SessionID string          `json:"session_id"`
	Estimates []SkillEstimate `json:"estimates"`
}

// Snapshot represents a point-in-time capture of learner estimates.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages estimate snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot and fills in its ID, sequence and timestamp.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// All returns every snapshot, oldest first.
	All(ctx context.Context) ([]Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// Session event actions.
const (
	SessionStart   = "start"
	SessionEnd     = "end"
	SessionAbandon = "abandon"
)

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID         string
	Action            string
	QuestionsAnswered int
	OverallScore      int
	DurationSecs      int
}

// SessionSummaryRecord is a completed session as stored.
type SessionSummaryRecord struct {
	ID                int
	Sequence          int64
	Timestamp         time.Time
	SessionID         string
	QuestionsAnswered int
	OverallScore      int
	DurationSecs      int
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID    string
	QuestionID   string
	QuestionType string
	SkillID      string // the question's primary skill
	Difficulty   int
	Response     string
	Score        float64
	ElapsedMs    int64
}

// AnswerEventRecord is a stored answer event.
type AnswerEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AnswerEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM token usage for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessionSummaries returns completed sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswerEvents returns the answers of one session in answer order.
	QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error)

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates LLM usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}
