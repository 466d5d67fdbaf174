package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CreateChat(ctx context.Context, chat *models.Chat) error {
	_, err := s.sess.
		InsertInto("chats").
		Columns("id", "username", "first_name", "last_name", "created_at", "remind_enabled", "remind_interval").
		Values(chat.ID, chat.Username, chat.FirstName, chat.LastName, time.Now(), chat.RemindEnabled, chat.RemindInterval).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to create chat",
			zap.Int64("chat_id", chat.ID),
			zap.Error(err),
		)
		return fmt.Errorf("create chat: %w", err)
	}

	s.logger.Info("chat registered",
		zap.Int64("chat_id", chat.ID),
		zap.Stringp("username", chat.Username),
	)

	return nil
}

func (s *Store) GetChat(ctx context.Context, chatID int64) (*models.Chat, error) {
	var chat models.Chat

	err := s.sess.
		Select("*").
		From("chats").
		Where("id = ?", chatID).
		LoadOneContext(ctx, &chat)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get chat",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get chat: %w", err)
	}

	return &chat, nil
}

func (s *Store) GetOrCreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	existing, err := s.GetChat(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	if err := s.CreateChat(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

func (s *Store) UpdateChat(ctx context.Context, chat *models.Chat) error {
	_, err := s.sess.
		Update("chats").
		Set("username", chat.Username).
		Set("first_name", chat.FirstName).
		Set("last_name", chat.LastName).
		Set("remind_enabled", chat.RemindEnabled).
		Set("remind_interval", chat.RemindInterval).
		Where("id = ?", chat.ID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update chat",
			zap.Int64("chat_id", chat.ID),
			zap.Error(err),
		)
		return fmt.Errorf("update chat: %w", err)
	}

	s.logger.Info("chat updated", zap.Int64("chat_id", chat.ID))
	return nil
}

func (s *Store) UpdateLastRemind(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		Update("chats").
		Set("last_remind", time.Now()).
		Where("id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update last remind",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("update last remind: %w", err)
	}

	return nil
}

func (s *Store) SetRemindEnabled(ctx context.Context, chatID int64, enabled bool) error {
	_, err := s.sess.
		Update("chats").
		Set("remind_enabled", enabled).
		Where("id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set remind enabled",
			zap.Int64("chat_id", chatID),
			zap.Bool("enabled", enabled),
			zap.Error(err),
		)
		return fmt.Errorf("set remind enabled: %w", err)
	}

	s.logger.Info("reminders toggled",
		zap.Int64("chat_id", chatID),
		zap.Bool("enabled", enabled),
	)

	return nil
}

func (s *Store) SetRemindInterval(ctx context.Context, chatID int64, intervalMinutes int) error {
	_, err := s.sess.
		Update("chats").
		Set("remind_interval", intervalMinutes).
		Where("id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to set remind interval",
			zap.Int64("chat_id", chatID),
			zap.Int("interval", intervalMinutes),
			zap.Error(err),
		)
		return fmt.Errorf("set remind interval: %w", err)
	}

	s.logger.Info("remind interval updated",
		zap.Int64("chat_id", chatID),
		zap.Int("interval", intervalMinutes),
	)

	return nil
}

// GetChatsToRemind returns chats with reminders on whose interval has lapsed.
func (s *Store) GetChatsToRemind(ctx context.Context) ([]models.Chat, error) {
	var chats []models.Chat

	query := `
		SELECT * FROM chats
		WHERE remind_enabled = true
		AND (
			last_remind IS NULL
			OR NOW() - last_remind >= (remind_interval || ' minutes')::interval
		)
	`

	_, err := s.sess.
		SelectBySql(query).
		LoadContext(ctx, &chats)

	if err != nil {
		s.logger.Error("failed to get chats to remind", zap.Error(err))
		return nil, fmt.Errorf("get chats to remind: %w", err)
	}

	s.logger.Debug("chats to remind",
		zap.Int("count", len(chats)),
	)

	return chats, nil
}

func (s *Store) DeleteChat(ctx context.Context, chatID int64) error {
	_, err := s.sess.
		DeleteFrom("chats").
		Where("id = ?", chatID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to delete chat",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return fmt.Errorf("delete chat: %w", err)
	}

	s.logger.Info("chat deleted", zap.Int64("chat_id", chatID))
	return nil
}
