package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// snapshotVersion is written into every new snapshot.
const snapshotVersion = 1

type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	if snap.Data.Version == 0 {
		snap.Data.Version = snapshotVersion
	}
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (sequence, timestamp, data) VALUES (?, ?, ?)`,
		seqNum, ts, string(data))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	snap.ID = int(id)
	snap.Sequence = seqNum
	snap.Timestamp = fromMillis(ts)
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, data FROM snapshots ORDER BY sequence DESC LIMIT 1`)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	return snap, nil
}

func (r *snapshotRepo) All(ctx context.Context) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, data FROM snapshots ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, *snap)
	}
	return out, rows.Err()
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY sequence DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func scanSnapshot(s rowScanner) (*Snapshot, error) {
	var snap Snapshot
	var ts int64
	var raw string
	if err := s.Scan(&snap.ID, &snap.Sequence, &ts, &raw); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	snap.Timestamp = fromMillis(ts)
	return &snap, nil
}
