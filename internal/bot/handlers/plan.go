package handlers

import (
	"context"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /plan
func HandlePlan(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if cached, err := ctx.Cache.GetCurrentPlan(cacheCtx); err == nil && cached != nil {
			cancel()
			ctx.Tracker.SeedCurrentPlan(*cached)
			return sendPlan(ctx, c, *cached)
		}
		cancel()

		apiCtx, apiCancel := context.WithTimeout(context.Background(), apiTimeout)
		defer apiCancel()

		plan := ctx.Tracker.LoadCurrentPlan(apiCtx)
		if msg := ctx.Tracker.Err(); msg != "" {
			ctx.Logger.Error("failed to load current plan",
				zap.Int64("chat_id", chatID),
				zap.String("error", msg),
			)
			ctx.Tracker.ClearErrors()
			return c.Send("😔 Could not load your plan. Please try again.")
		}

		storeCtx, storeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer storeCancel()
		if err := ctx.Cache.SetCurrentPlan(storeCtx, plan); err != nil {
			ctx.Logger.Warn("failed to cache current plan", zap.Error(err))
		}

		return sendPlan(ctx, c, plan)
	}
}

func sendPlan(ctx *Context, c tele.Context, plan models.PlanState) error {
	message := utils.FormatPlan(plan)

	if plan.Plan.Name == models.FreePlanName {
		message += "\n💡 Upgrade for unlimited applications, contacts and analytics\\."
	}

	return c.Send(
		message,
		utils.MainMenuKeyboard(),
		tele.ModeMarkdownV2,
	)
}
