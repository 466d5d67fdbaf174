package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/config"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/storage/postgres"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/tracker"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// reminders cover tasks due within this window
const dueSoonWindow = 24 * time.Hour

type TaskReminder struct {
	bot     *tele.Bot
	store   *postgres.Store
	tracker *tracker.Facade
	config  *config.Config
	logger  *zap.Logger
}

func New(
	bot *tele.Bot,
	store *postgres.Store,
	trk *tracker.Facade,
	cfg *config.Config,
	logger *zap.Logger,
) *TaskReminder {
	return &TaskReminder{
		bot:     bot,
		store:   store,
		tracker: trk,
		config:  cfg,
		logger:  logger,
	}
}

func (tr *TaskReminder) Start(ctx context.Context) {
	ticker := time.NewTicker(tr.config.RemindInterval)
	defer ticker.Stop()

	tr.logger.Info("task reminder started",
		zap.Duration("interval", tr.config.RemindInterval),
	)

	time.Sleep(30 * time.Second)
	tr.remindAllChats(ctx)

	for {
		select {
		case <-ctx.Done():
			tr.logger.Info("task reminder stopped")
			return
		case <-ticker.C:
			tr.remindAllChats(ctx)
		}
	}
}

func (tr *TaskReminder) remindAllChats(ctx context.Context) {
	tr.logger.Info("starting reminder check for all chats")

	dbCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	chats, err := tr.store.GetChatsToRemind(dbCtx)
	if err != nil {
		tr.logger.Error("failed to get chats to remind", zap.Error(err))
		return
	}

	if len(chats) == 0 {
		tr.logger.Debug("no chats to remind")
		return
	}

	dueSoon := tr.loadDueSoonTasks(dbCtx)
	if len(dueSoon) == 0 {
		tr.logger.Debug("no tasks due soon")
		return
	}

	tr.logger.Info("reminding chats", zap.Int("count", len(chats)))

	for _, chat := range chats {
		if err := tr.remindChat(dbCtx, &chat, dueSoon); err != nil {
			tr.logger.Error("failed to remind chat",
				zap.Int64("chat_id", chat.ID),
				zap.Error(err),
			)
			continue
		}

		if err := tr.store.UpdateLastRemind(dbCtx, chat.ID); err != nil {
			tr.logger.Error("failed to update last remind",
				zap.Int64("chat_id", chat.ID),
				zap.Error(err),
			)
		}

		time.Sleep(2 * time.Second)
	}

	tr.logger.Info("finished reminder check for all chats")
}

func (tr *TaskReminder) loadDueSoonTasks(ctx context.Context) []models.Task {
	tasks := tr.tracker.LoadTasks(ctx, huntoza.TaskListParams{
		Status: string(models.TaskStatusPending),
		Sort:   "oldest",
		Limit:  tr.config.MaxRemindersPerCheck,
	})
	if tasks == nil {
		if msg := tr.tracker.Err(); msg != "" {
			tr.logger.Error("failed to load tasks for reminders", zap.String("error", msg))
			tr.tracker.ClearErrors()
		}
		return nil
	}

	now := time.Now()
	deadline := now.Add(dueSoonWindow)

	var dueSoon []models.Task
	for _, task := range tasks {
		if task.DueDate.IsZero() {
			continue
		}
		if task.DueDate.Before(now) || task.DueDate.After(deadline) {
			continue
		}
		dueSoon = append(dueSoon, task)
	}

	return dueSoon
}

func (tr *TaskReminder) remindChat(ctx context.Context, chat *models.Chat, dueSoon []models.Task) error {
	tr.logger.Debug("checking reminders for chat", zap.Int64("chat_id", chat.ID))

	unreminded, err := tr.store.UnremindedTasks(ctx, chat.ID, dueSoon)
	if err != nil {
		return fmt.Errorf("get unreminded tasks: %w", err)
	}

	if len(unreminded) == 0 {
		tr.logger.Debug("nothing new to remind", zap.Int64("chat_id", chat.ID))
		return nil
	}

	if tr.config.MaxRemindersPerCheck > 0 && len(unreminded) > tr.config.MaxRemindersPerCheck {
		unreminded = unreminded[:tr.config.MaxRemindersPerCheck]
	}

	if err := tr.sendReminders(chat.ID, unreminded); err != nil {
		return fmt.Errorf("send reminders: %w", err)
	}

	go tr.markReminded(chat.ID, unreminded)

	tr.logger.Info("sent task reminders",
		zap.Int64("chat_id", chat.ID),
		zap.Int("count", len(unreminded)),
	)

	return nil
}

func (tr *TaskReminder) sendReminders(chatID int64, tasks []models.Task) error {
	recipient := &tele.User{ID: chatID}

	for i, task := range tasks {
		message := utils.FormatTaskReminder(&task)
		keyboard := utils.InlineTaskKeyboard(task.ID, false)

		if _, err := tr.bot.Send(recipient, message, keyboard, tele.ModeMarkdownV2); err != nil {
			tr.logger.Error("failed to send task reminder",
				zap.Int64("chat_id", chatID),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			continue
		}

		if i < len(tasks)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	return nil
}

func (tr *TaskReminder) markReminded(chatID int64, tasks []models.Task) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, task := range tasks {
		if err := tr.store.MarkTaskReminded(ctx, chatID, task.ID, task.DueDate); err != nil {
			tr.logger.Error("failed to mark task reminded",
				zap.Int64("chat_id", chatID),
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
		}
	}
}
