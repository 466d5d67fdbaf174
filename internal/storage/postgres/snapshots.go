package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

func (s *Store) saveSnapshot(ctx context.Context, entity, entityID string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	// plain SQL via InsertBySql for ON CONFLICT
	query := `
		INSERT INTO entity_snapshots (entity, entity_id, payload, synced_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (entity, entity_id) DO UPDATE SET
			payload   = EXCLUDED.payload,
			synced_at = EXCLUDED.synced_at
	`

	_, err = s.sess.
		InsertBySql(query, entity, entityID, models.RawJSON(data), time.Now()).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to save snapshot",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

func (s *Store) SaveJobSnapshots(ctx context.Context, jobs []models.JobApplication) error {
	for _, job := range jobs {
		if err := s.saveSnapshot(ctx, models.SnapshotEntityJob, job.ID, job); err != nil {
			return err
		}
	}

	s.logger.Debug("job snapshots saved", zap.Int("count", len(jobs)))
	return nil
}

func (s *Store) SaveTaskSnapshots(ctx context.Context, tasks []models.Task) error {
	for _, task := range tasks {
		if err := s.saveSnapshot(ctx, models.SnapshotEntityTask, task.ID, task); err != nil {
			return err
		}
	}

	s.logger.Debug("task snapshots saved", zap.Int("count", len(tasks)))
	return nil
}

func (s *Store) SaveContactSnapshots(ctx context.Context, contacts []models.Contact) error {
	for _, contact := range contacts {
		if err := s.saveSnapshot(ctx, models.SnapshotEntityContact, contact.ID, contact); err != nil {
			return err
		}
	}

	s.logger.Debug("contact snapshots saved", zap.Int("count", len(contacts)))
	return nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, entity, entityID string) error {
	_, err := s.sess.
		DeleteFrom("entity_snapshots").
		Where("entity = ? AND entity_id = ?", entity, entityID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete snapshot",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return fmt.Errorf("delete snapshot: %w", err)
	}

	return nil
}

// SnapshotCounts reports how many entities of each kind are stored locally.
func (s *Store) SnapshotCounts(ctx context.Context) (map[string]int, error) {
	type row struct {
		Entity string `db:"entity"`
		Count  int    `db:"count"`
	}

	var rows []row
	_, err := s.sess.
		Select("entity", "COUNT(*) AS count").
		From("entity_snapshots").
		GroupBy("entity").
		LoadContext(ctx, &rows)

	if err != nil {
		s.logger.Error("failed to count snapshots", zap.Error(err))
		return nil, fmt.Errorf("snapshot counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Entity] = r.Count
	}

	return counts, nil
}

// MarkTaskReminded records one sent reminder; re-sends for the same task and
// due date are suppressed by the conflict target.
func (s *Store) MarkTaskReminded(ctx context.Context, chatID int64, taskID string, dueDate time.Time) error {
	query := `
		INSERT INTO sent_reminders (chat_id, task_id, due_date, sent_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chat_id, task_id, due_date) DO NOTHING
	`

	_, err := s.sess.
		InsertBySql(query, chatID, taskID, dueDate).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark task reminded",
			zap.Int64("chat_id", chatID),
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return fmt.Errorf("mark task reminded: %w", err)
	}

	return nil
}

// UnremindedTasks filters the given task ids down to those not yet reminded
// for this chat.
func (s *Store) UnremindedTasks(ctx context.Context, chatID int64, tasks []models.Task) ([]models.Task, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}

	var seen []string
	_, err := s.sess.
		Select("task_id").
		From("sent_reminders").
		Where("chat_id = ?", chatID).
		Where("task_id IN ?", ids).
		LoadContext(ctx, &seen)

	if err != nil {
		s.logger.Error("failed to get sent reminders",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get sent reminders: %w", err)
	}

	seenMap := make(map[string]bool, len(seen))
	for _, id := range seen {
		seenMap[id] = true
	}

	var unseen []models.Task
	for _, task := range tasks {
		if !seenMap[task.ID] {
			unseen = append(unseen, task)
		}
	}

	return unseen, nil
}
