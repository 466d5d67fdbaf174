package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		data := cb.Data

		// telebot prefixes raw callback data with \f
		data = strings.TrimPrefix(data, "\f")

		// bound buttons carry "unique|payload"
		action := data
		payload := ""
		if idx := strings.Index(data, "|"); idx >= 0 {
			action = data[:idx]
			payload = data[idx+1:]
		}

		ctx.Logger.Debug("received callback",
			zap.String("action", action),
			zap.String("payload", payload),
			zap.Int64("chat_id", c.Sender().ID),
		)

		switch action {
		case "job_favorite":
			return handleJobFavorite(ctx, c, payload)
		case "job_delete":
			return confirmDelete(ctx, c, "job_delete", payload, "Delete this application?")
		case "job_delete_yes":
			return handleJobDelete(ctx, c, payload)
		case "job_delete_no":
			return cancelJobDelete(ctx, c, payload)
		case "task_complete":
			return handleTaskComplete(ctx, c, payload)
		case "task_delete":
			return confirmDelete(ctx, c, "task_delete", payload, "Delete this task?")
		case "task_delete_yes":
			return handleTaskDelete(ctx, c, payload)
		case "task_delete_no":
			return cancelTaskDelete(ctx, c, payload)
		case "contact_favorite":
			return handleContactFavorite(ctx, c, payload)
		case "contact_delete":
			return confirmDelete(ctx, c, "contact_delete", payload, "Delete this contact?")
		case "contact_delete_yes":
			return handleContactDelete(ctx, c, payload)
		case "contact_delete_no":
			return cancelContactDelete(ctx, c, payload)
		case "jobs_page_prev", "jobs_page_next":
			return handlePageChange(ctx, c, payload, listJobs)
		case "tasks_page_prev", "tasks_page_next":
			return handlePageChange(ctx, c, payload, listTasks)
		case "contacts_page_prev", "contacts_page_next":
			return handlePageChange(ctx, c, payload, listContacts)
		case "jobs_page_current", "tasks_page_current", "contacts_page_current":
			return c.Respond(&tele.CallbackResponse{})
		default:
			ctx.Logger.Warn("unknown callback action",
				zap.String("action", action),
				zap.String("data", data),
			)
			return c.Respond(&tele.CallbackResponse{Text: "❓ Unknown action"})
		}
	}
}

// ==================== Jobs ====================

func handleJobFavorite(ctx *Context, c tele.Context, jobID string) error {
	if jobID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	job, err := ctx.Tracker.ToggleJobFavorite(apiCtx, jobID)
	if err != nil {
		ctx.Logger.Error("failed to toggle job favorite",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not update"})
	}

	if err := c.Edit(
		utils.FormatJob(job),
		utils.InlineJobKeyboard(job.ID, job.Favorite),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit job card", zap.Error(err))
	}

	text := "⭐ Added to favorites"
	if !job.Favorite {
		text = "☆ Removed from favorites"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

func handleJobDelete(ctx *Context, c tele.Context, jobID string) error {
	if jobID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if !ctx.Tracker.DeleteJob(apiCtx, jobID) {
		ctx.Logger.Error("failed to delete job", zap.String("job_id", jobID))
		ctx.Tracker.ClearErrors()
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not delete"})
	}

	invalidateDashboard(ctx)

	if err := c.Delete(); err != nil {
		ctx.Logger.Warn("failed to delete job card", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "🗑 Application deleted"})
}

// ==================== Tasks ====================

func handleTaskComplete(ctx *Context, c tele.Context, taskID string) error {
	if taskID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	task, err := ctx.Tracker.CompleteTask(apiCtx, taskID)
	if err != nil {
		ctx.Logger.Error("failed to complete task",
			zap.String("task_id", taskID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not complete"})
	}

	invalidateDashboard(ctx)

	if err := c.Edit(
		utils.FormatTask(task),
		utils.InlineTaskKeyboard(task.ID, true),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit task card", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "✅ Task completed"})
}

func handleTaskDelete(ctx *Context, c tele.Context, taskID string) error {
	if taskID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if !ctx.Tracker.DeleteTask(apiCtx, taskID) {
		ctx.Logger.Error("failed to delete task", zap.String("task_id", taskID))
		ctx.Tracker.ClearErrors()
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not delete"})
	}

	invalidateDashboard(ctx)

	if err := c.Delete(); err != nil {
		ctx.Logger.Warn("failed to delete task card", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "🗑 Task deleted"})
}

// ==================== Contacts ====================

func handleContactFavorite(ctx *Context, c tele.Context, contactID string) error {
	if contactID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	contact, err := ctx.Tracker.ToggleContactFavorite(apiCtx, contactID)
	if err != nil {
		ctx.Logger.Error("failed to toggle contact favorite",
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not update"})
	}

	if err := c.Edit(
		utils.FormatContact(contact),
		utils.InlineContactKeyboard(contact.ID, contact.Favorite),
		tele.ModeMarkdownV2,
	); err != nil {
		ctx.Logger.Warn("failed to edit contact card", zap.Error(err))
	}

	text := "⭐ Added to favorites"
	if !contact.Favorite {
		text = "☆ Removed from favorites"
	}
	return c.Respond(&tele.CallbackResponse{Text: text})
}

func handleContactDelete(ctx *Context, c tele.Context, contactID string) error {
	if contactID == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	if !ctx.Tracker.DeleteContact(apiCtx, contactID) {
		ctx.Logger.Error("failed to delete contact", zap.String("contact_id", contactID))
		ctx.Tracker.ClearErrors()
		return c.Respond(&tele.CallbackResponse{Text: "😔 Could not delete"})
	}

	invalidateDashboard(ctx)

	if err := c.Delete(); err != nil {
		ctx.Logger.Warn("failed to delete contact card", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: "🗑 Contact deleted"})
}

// ==================== Delete confirmation ====================

// confirmDelete swaps the card's actions for a yes/no step; nothing is sent
// to the server until the user confirms.
func confirmDelete(ctx *Context, c tele.Context, action, id, prompt string) error {
	if id == "" {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad request"})
	}

	if err := c.Edit(utils.ConfirmKeyboard(action, id)); err != nil {
		ctx.Logger.Warn("failed to show delete confirmation", zap.Error(err))
	}

	return c.Respond(&tele.CallbackResponse{Text: prompt})
}

func cancelJobDelete(ctx *Context, c tele.Context, jobID string) error {
	favorite := false
	for _, job := range ctx.Tracker.Jobs() {
		if job.ID == jobID {
			favorite = job.Favorite
			break
		}
	}

	if err := c.Edit(utils.InlineJobKeyboard(jobID, favorite)); err != nil {
		ctx.Logger.Warn("failed to restore job card", zap.Error(err))
	}
	return c.Respond(&tele.CallbackResponse{Text: "Cancelled"})
}

func cancelTaskDelete(ctx *Context, c tele.Context, taskID string) error {
	completed := false
	for _, task := range ctx.Tracker.Tasks() {
		if task.ID == taskID {
			completed = task.Status == models.TaskStatusCompleted
			break
		}
	}

	if err := c.Edit(utils.InlineTaskKeyboard(taskID, completed)); err != nil {
		ctx.Logger.Warn("failed to restore task card", zap.Error(err))
	}
	return c.Respond(&tele.CallbackResponse{Text: "Cancelled"})
}

func cancelContactDelete(ctx *Context, c tele.Context, contactID string) error {
	favorite := false
	for _, contact := range ctx.Tracker.Contacts() {
		if contact.ID == contactID {
			favorite = contact.Favorite
			break
		}
	}

	if err := c.Edit(utils.InlineContactKeyboard(contactID, favorite)); err != nil {
		ctx.Logger.Warn("failed to restore contact card", zap.Error(err))
	}
	return c.Respond(&tele.CallbackResponse{Text: "Cancelled"})
}

// ==================== Pagination ====================

func handlePageChange(ctx *Context, c tele.Context, payload string, list func(*Context, tele.Context, int) error) error {
	page, err := strconv.Atoi(payload)
	if err != nil || page < 1 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Bad page"})
	}

	if err := c.Respond(&tele.CallbackResponse{Text: fmt.Sprintf("📄 Page %d", page)}); err != nil {
		ctx.Logger.Warn("failed to answer callback", zap.Error(err))
	}

	return list(ctx, c, page)
}

func invalidateDashboard(ctx *Context) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := ctx.Cache.InvalidateDashboard(cacheCtx); err != nil {
		ctx.Logger.Debug("failed to invalidate dashboard cache", zap.Error(err))
	}
}
