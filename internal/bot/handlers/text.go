package handlers

import (
	"context"
	"strings"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Chat states for conversation flow
const (
	StateIdle = ""

	StateAwaitingJobCompany  = "awaiting_job_company"
	StateAwaitingJobPosition = "awaiting_job_position"
	StateAwaitingJobStatus   = "awaiting_job_status"
	StateAwaitingJobLocation = "awaiting_job_location"

	StateAwaitingTaskTitle      = "awaiting_task_title"
	StateAwaitingTaskDueDate    = "awaiting_task_due_date"
	StateAwaitingTaskPriority   = "awaiting_task_priority"
	StateAwaitingTaskRelatedJob = "awaiting_task_related_job"

	StateAwaitingContactName    = "awaiting_contact_name"
	StateAwaitingContactEmail   = "awaiting_contact_email"
	StateAwaitingContactCompany = "awaiting_contact_company"
)

// HandleText processes all text messages
func HandleText(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		text := strings.TrimSpace(c.Text())
		chatID := c.Sender().ID

		// Check chat state
		state, err := getChatState(ctx, chatID)
		if err != nil {
			ctx.Logger.Warn("failed to get chat state", zap.Error(err))
			state = StateIdle
		}

		// Cancel wins over any form state
		if text == "❌ Cancel" {
			return cancelConversation(ctx, c)
		}

		// Handle state-based input
		if state != StateIdle {
			return handleStateInput(ctx, c, state)
		}

		// Handle menu buttons
		switch text {
		// Main menu
		case "📋 Applications":
			return HandleJobs(ctx)(c)
		case "✅ Tasks":
			return HandleTasks(ctx)(c)
		case "👥 Contacts":
			return HandleContacts(ctx)(c)
		case "📊 Dashboard":
			return HandleStats(ctx)(c)
		case "💳 Plan":
			return HandlePlan(ctx)(c)
		case "❓ Help":
			return HandleHelp(ctx)(c)

		// Jobs menu
		case "📋 List applications":
			return listJobs(ctx, c, 1)
		case "➕ Add application":
			return startJobForm(ctx, c)

		// Tasks menu
		case "✅ List tasks":
			return listTasks(ctx, c, 1)
		case "➕ Add task":
			return startTaskForm(ctx, c)

		// Contacts menu
		case "👥 List contacts":
			return listContacts(ctx, c, 1)
		case "➕ Add contact":
			return startContactForm(ctx, c)

		case "◀️ Back":
			return c.Send("Main menu", utils.MainMenuKeyboard())

		default:
			return c.Reply("Use the menu buttons or commands")
		}
	}
}

func handleStateInput(ctx *Context, c tele.Context, state string) error {
	switch state {
	case StateAwaitingJobCompany:
		return handleJobCompanyInput(ctx, c)
	case StateAwaitingJobPosition:
		return handleJobPositionInput(ctx, c)
	case StateAwaitingJobStatus:
		return handleJobStatusInput(ctx, c)
	case StateAwaitingJobLocation:
		return handleJobLocationInput(ctx, c)

	case StateAwaitingTaskTitle:
		return handleTaskTitleInput(ctx, c)
	case StateAwaitingTaskDueDate:
		return handleTaskDueDateInput(ctx, c)
	case StateAwaitingTaskPriority:
		return handleTaskPriorityInput(ctx, c)
	case StateAwaitingTaskRelatedJob:
		return handleTaskRelatedJobInput(ctx, c)

	case StateAwaitingContactName:
		return handleContactNameInput(ctx, c)
	case StateAwaitingContactEmail:
		return handleContactEmailInput(ctx, c)
	case StateAwaitingContactCompany:
		return handleContactCompanyInput(ctx, c)

	default:
		ctx.Logger.Warn("unknown chat state", zap.String("state", state))
		if err := clearChatState(ctx, c.Sender().ID); err != nil {
			ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
		}
		return c.Send("Use the menu buttons or commands", utils.MainMenuKeyboard())
	}
}

// ==================== State Helpers ====================

func setChatState(ctx *Context, chatID int64, state string) error {
	return ctx.Cache.SetChatState(context.Background(), chatID, state)
}

func getChatState(ctx *Context, chatID int64) (string, error) {
	return ctx.Cache.GetChatState(context.Background(), chatID)
}

func clearChatState(ctx *Context, chatID int64) error {
	return ctx.Cache.DeleteChatState(context.Background(), chatID)
}

func cancelConversation(ctx *Context, c tele.Context) error {
	chatID := c.Sender().ID

	if err := clearChatState(ctx, chatID); err != nil {
		ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
	}

	return c.Send(
		"❌ Cancelled",
		utils.MainMenuKeyboard(),
	)
}
