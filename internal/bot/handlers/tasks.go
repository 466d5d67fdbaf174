package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	formTask     = "task"
	tasksPerPage = 5
)

var dueDateLayouts = []string{
	"02.01.2006 15:04",
	"02.01.2006",
}

type taskDraft struct {
	Title      string     `json:"title"`
	DueDate    *time.Time `json:"dueDate,omitempty"`
	Priority   string     `json:"priority"`
	RelatedJob string     `json:"relatedJob,omitempty"`
}

// /tasks
func HandleTasks(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		if err := clearChatState(ctx, chatID); err != nil {
			ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
		}

		message := "✅ *Tasks*\n\n"
		message += "What do you want to do?"

		return c.Send(
			message,
			utils.TasksMenuKeyboard(),
			tele.ModeMarkdown,
		)
	}
}

func listTasks(ctx *Context, c tele.Context, page int) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	tasks := ctx.Tracker.LoadTasks(apiCtx, huntoza.TaskListParams{
		Page:  page,
		Limit: tasksPerPage,
	})
	if tasks == nil {
		if msg := ctx.Tracker.Err(); msg != "" {
			ctx.Logger.Error("failed to load tasks",
				zap.Int64("chat_id", chatID),
				zap.String("error", msg),
			)
			ctx.Tracker.ClearErrors()
			return c.Send("😔 Could not load your tasks. Please try again.")
		}
	}

	if len(tasks) == 0 {
		return c.Send(utils.FormatNoTasksMessage(), tele.ModeMarkdownV2)
	}

	pagination := ctx.Tracker.TasksPagination()

	summary := utils.FormatTaskList(tasks, pagination.TotalItems)
	if err := c.Send(summary, tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Error("failed to send task list", zap.Error(err))
		return c.Send("😔 Could not send your tasks.")
	}

	for i := range tasks {
		task := &tasks[i]
		message := utils.FormatTask(task)
		keyboard := utils.InlineTaskKeyboard(task.ID, task.Status == models.TaskStatusCompleted)

		if _, err := c.Bot().Send(
			c.Chat(),
			message,
			&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: keyboard},
		); err != nil {
			ctx.Logger.Error("failed to send task card",
				zap.String("task_id", task.ID),
				zap.Error(err),
			)
			continue
		}

		if i < len(tasks)-1 {
			time.Sleep(cardSendGap)
		}
	}

	if pagination.TotalPages > 1 {
		text := fmt.Sprintf("📄 Page %d of %d", pagination.CurrentPage, pagination.TotalPages)
		if err := c.Send(text, utils.InlinePaginationKeyboard(pagination.CurrentPage, pagination.TotalPages, "tasks_page")); err != nil {
			ctx.Logger.Warn("failed to send pagination controls", zap.Error(err))
		}
	}

	return nil
}

// ==================== Add Task Form ====================

func startTaskForm(ctx *Context, c tele.Context) error {
	chatID := c.Sender().ID

	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formTask); err != nil {
		ctx.Logger.Debug("no task draft to clear", zap.Error(err))
	}

	if err := setChatState(ctx, chatID, StateAwaitingTaskTitle); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send(
		"📝 What is the task? (e.g. 'Follow up with recruiter')",
		utils.CancelKeyboard(),
	)
}

func handleTaskTitleInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	if text == "" {
		return c.Send("Title is required. Please enter the task:", utils.CancelKeyboard())
	}

	draft := &taskDraft{Title: text}
	if err := saveTaskDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save task draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingTaskDueDate); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send(
		"⏰ When is it due? (e.g. 15.09.2026 or 15.09.2026 14:00, or skip)",
		utils.SkipKeyboard(),
	)
}

func handleTaskDueDateInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	draft, err := loadTaskDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load task draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	if text != "⏭ Skip" {
		due, parseErr := parseDueDate(text)
		if parseErr != nil {
			return c.Send(
				"I could not read that date. Use DD.MM.YYYY or DD.MM.YYYY HH:MM, or skip:",
				utils.SkipKeyboard(),
			)
		}
		draft.DueDate = &due
	}

	if err := saveTaskDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save task draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingTaskPriority); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("⚡ How important is it?", utils.PriorityKeyboard())
}

func handleTaskPriorityInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(strings.ToLower(c.Text()))
	chatID := c.Sender().ID

	if !models.IsValidPriority(text) {
		return c.Send("Please pick a priority from the keyboard:", utils.PriorityKeyboard())
	}

	draft, err := loadTaskDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load task draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	draft.Priority = text

	if err := saveTaskDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save task draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingTaskRelatedJob); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send(
		"🔗 Link it to an application? Send the company name, or skip:",
		utils.SkipKeyboard(),
	)
}

func handleTaskRelatedJobInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	draft, err := loadTaskDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load task draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	if text != "⏭ Skip" {
		jobID := findJobByCompany(ctx, text)
		if jobID == "" {
			return c.Send(
				fmt.Sprintf("No application for %q in your list. Send another company, or skip:", text),
				utils.SkipKeyboard(),
			)
		}
		draft.RelatedJob = jobID
	}

	return submitTaskForm(ctx, c, draft)
}

// findJobByCompany matches against the loaded list only; an empty result
// just means the task is created without a link.
func findJobByCompany(ctx *Context, company string) string {
	for _, job := range ctx.Tracker.Jobs() {
		if strings.EqualFold(job.Company, company) {
			return job.ID
		}
	}
	return ""
}

func submitTaskForm(ctx *Context, c tele.Context, draft *taskDraft) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	input := huntoza.TaskInput{
		Title:      draft.Title,
		Status:     string(models.TaskStatusPending),
		Priority:   draft.Priority,
		DueDate:    draft.DueDate,
		RelatedJob: models.NormalizeRef(draft.RelatedJob),
	}

	task, err := ctx.Tracker.CreateTask(apiCtx, input)
	if err != nil {
		ctx.Logger.Error("failed to create task",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)

		// keep the form open so the answers are not lost
		return c.Send(
			"😔 Could not save the task. Send the company again, or skip:",
			utils.SkipKeyboard(),
		)
	}

	clearTaskForm(ctx, chatID)

	if err := c.Send(
		fmt.Sprintf("✅ Task saved: *%s*", utils.EscapeMarkdown(task.Title)),
		utils.TasksMenuKeyboard(),
		tele.ModeMarkdownV2,
	); err != nil {
		return err
	}

	return c.Send(
		utils.FormatTask(task),
		&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: utils.InlineTaskKeyboard(task.ID, false)},
	)
}

func parseDueDate(text string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if due, err := time.ParseInLocation(layout, text, time.Local); err == nil {
			return due, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", text)
}

func saveTaskDraft(ctx *Context, chatID int64, draft *taskDraft) error {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	return ctx.Cache.SetFormDraft(cacheCtx, chatID, formTask, draft)
}

func loadTaskDraft(ctx *Context, chatID int64) (*taskDraft, error) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	var draft taskDraft
	if err := ctx.Cache.GetFormDraft(cacheCtx, chatID, formTask, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func clearTaskForm(ctx *Context, chatID int64) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formTask); err != nil {
		ctx.Logger.Debug("failed to clear task draft", zap.Error(err))
	}

	if err := clearChatState(ctx, chatID); err != nil {
		ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
	}
}
