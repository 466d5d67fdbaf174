package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/access"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	formJob      = "job"
	jobsPerPage  = 5
	cardSendGap  = 300 * time.Millisecond
	apiTimeout   = 15 * time.Second
	draftTimeout = 10 * time.Second
)

// jobDraft accumulates add-form answers between messages
type jobDraft struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

// /jobs
func HandleJobs(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		if err := clearChatState(ctx, chatID); err != nil {
			ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
		}

		message := "📋 *Job applications*\n\n"
		message += "What do you want to do?"

		return c.Send(
			message,
			utils.JobsMenuKeyboard(),
			tele.ModeMarkdown,
		)
	}
}

func listJobs(ctx *Context, c tele.Context, page int) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	jobs := ctx.Tracker.LoadJobs(apiCtx, huntoza.JobListParams{
		Page:  page,
		Limit: jobsPerPage,
	})
	if jobs == nil {
		if msg := ctx.Tracker.Err(); msg != "" {
			ctx.Logger.Error("failed to load jobs",
				zap.Int64("chat_id", chatID),
				zap.String("error", msg),
			)
			ctx.Tracker.ClearErrors()
			return c.Send("😔 Could not load your applications. Please try again.")
		}
	}

	if len(jobs) == 0 {
		return c.Send(utils.FormatNoJobsMessage(), tele.ModeMarkdownV2)
	}

	pagination := ctx.Tracker.JobsPagination()

	summary := utils.FormatJobList(jobs, pagination.TotalItems)
	if err := c.Send(summary, tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Error("failed to send job list", zap.Error(err))
		return c.Send("😔 Could not send your applications.")
	}

	for i := range jobs {
		job := &jobs[i]
		message := utils.FormatJob(job)
		keyboard := utils.InlineJobKeyboard(job.ID, job.Favorite)

		if _, err := c.Bot().Send(
			c.Chat(),
			message,
			&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: keyboard},
		); err != nil {
			ctx.Logger.Error("failed to send job card",
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}

		if i < len(jobs)-1 {
			time.Sleep(cardSendGap)
		}
	}

	if pagination.TotalPages > 1 {
		text := fmt.Sprintf("📄 Page %d of %d", pagination.CurrentPage, pagination.TotalPages)
		if err := c.Send(text, utils.InlinePaginationKeyboard(pagination.CurrentPage, pagination.TotalPages, "jobs_page")); err != nil {
			ctx.Logger.Warn("failed to send pagination controls", zap.Error(err))
		}
	}

	return nil
}

// ==================== Add Job Form ====================

func startJobForm(ctx *Context, c tele.Context) error {
	chatID := c.Sender().ID

	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formJob); err != nil {
		ctx.Logger.Debug("no job draft to clear", zap.Error(err))
	}

	if err := setChatState(ctx, chatID, StateAwaitingJobCompany); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send(
		"🏢 Which company did you apply to?",
		utils.CancelKeyboard(),
	)
}

func handleJobCompanyInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	if text == "" {
		return c.Send("Company is required. Please enter the company name:", utils.CancelKeyboard())
	}

	draft := &jobDraft{Company: text}
	if err := saveJobDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save job draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingJobPosition); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("💼 What position did you apply for?", utils.CancelKeyboard())
}

func handleJobPositionInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	if text == "" {
		return c.Send("Position is required. Please enter the position:", utils.CancelKeyboard())
	}

	draft, err := loadJobDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load job draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	draft.Position = text
	if err := saveJobDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save job draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingJobStatus); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("📊 What is the application status?", utils.JobStatusKeyboard())
}

func handleJobStatusInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	status := strings.ToLower(text)
	if !models.IsValidJobStatus(status) {
		return c.Send("Please pick a status from the keyboard:", utils.JobStatusKeyboard())
	}

	draft, err := loadJobDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load job draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	draft.Status = status
	if err := saveJobDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save job draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingJobLocation); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("📍 Where is the job located? (or skip)", utils.SkipKeyboard())
}

func handleJobLocationInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	draft, err := loadJobDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load job draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	if text != "⏭ Skip" {
		draft.Location = text
	}

	return submitJobForm(ctx, c, draft)
}

func submitJobForm(ctx *Context, c tele.Context, draft *jobDraft) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	now := time.Now()
	input := huntoza.JobInput{
		Company:         draft.Company,
		Position:        draft.Position,
		Status:          draft.Status,
		JobLocation:     draft.Location,
		ApplicationDate: &now,
	}

	job, err := ctx.Tracker.CreateJob(apiCtx, input)
	if err != nil {
		var limitErr *access.LimitError
		if errors.As(err, &limitErr) {
			clearJobForm(ctx, chatID)
			return c.Send(
				fmt.Sprintf("🚫 %s\n\nUpgrade your plan with /plan to add more.", limitErr.Error()),
				utils.JobsMenuKeyboard(),
			)
		}

		ctx.Logger.Error("failed to create job",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)

		// keep the form open so the answers are not lost
		return c.Send(
			"😔 Could not save the application. Send the location again or press ⏭ Skip.",
			utils.SkipKeyboard(),
		)
	}

	clearJobForm(ctx, chatID)

	if err := c.Send(
		fmt.Sprintf("✅ Application saved: *%s* at *%s*", utils.EscapeMarkdown(job.Position), utils.EscapeMarkdown(job.Company)),
		utils.JobsMenuKeyboard(),
		tele.ModeMarkdownV2,
	); err != nil {
		return err
	}

	return c.Send(
		utils.FormatJob(job),
		&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: utils.InlineJobKeyboard(job.ID, job.Favorite)},
	)
}

func saveJobDraft(ctx *Context, chatID int64, draft *jobDraft) error {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	return ctx.Cache.SetFormDraft(cacheCtx, chatID, formJob, draft)
}

func loadJobDraft(ctx *Context, chatID int64) (*jobDraft, error) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	var draft jobDraft
	if err := ctx.Cache.GetFormDraft(cacheCtx, chatID, formJob, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func clearJobForm(ctx *Context, chatID int64) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formJob); err != nil {
		ctx.Logger.Debug("failed to clear job draft", zap.Error(err))
	}

	if err := clearChatState(ctx, chatID); err != nil {
		ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
	}
}
