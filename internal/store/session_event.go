package store

import (
	"context"
	"fmt"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, action, questions_answered, overall_score, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.SessionID, data.Action,
		data.QuestionsAnswered, data.OverallScore, data.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(sequence, timestamp, session_id, question_id, question_type, skill_id,
			 difficulty, response, score, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, now(), data.SessionID, data.QuestionID, data.QuestionType, data.SkillID,
		data.Difficulty, data.Response, data.Score, data.ElapsedMs,
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	where, args := whereClause(opts, "action = ?")
	args = append([]any{SessionEnd}, args...)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, session_id, questions_answered, overall_score, duration_secs
		FROM session_events`+where+` ORDER BY sequence DESC`+limitClause(opts),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var out []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID,
			&rec.QuestionsAnswered, &rec.OverallScore, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryAnswerEvents(ctx context.Context, sessionID string) ([]AnswerEventRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, session_id, question_id, question_type, skill_id,
			difficulty, response, score, elapsed_ms
		FROM answer_events WHERE session_id = ? ORDER BY sequence ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query answer events: %w", err)
	}
	defer rows.Close()

	var out []AnswerEventRecord
	for rows.Next() {
		var rec AnswerEventRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.QuestionID,
			&rec.QuestionType, &rec.SkillID, &rec.Difficulty, &rec.Response,
			&rec.Score, &rec.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan answer event: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}
