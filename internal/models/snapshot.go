package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

const (
	SnapshotEntityJob     = "job"
	SnapshotEntityTask    = "task"
	SnapshotEntityContact = "contact"
)

// Snapshot is a locally persisted copy of one server-side entity, written
// after a successful list load so counts survive offline.
type Snapshot struct {
	Entity   string    `db:"entity"`
	EntityID string    `db:"entity_id"`
	Payload  RawJSON   `db:"payload"`
	SyncedAt time.Time `db:"synced_at"`
}

type SentReminder struct {
	ChatID   int64     `db:"chat_id"`
	TaskID   string    `db:"task_id"`
	DueDate  time.Time `db:"due_date"`
	SentAt   time.Time `db:"sent_at"`
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	*r = RawJSON(bytes)
	return nil
}
