package handlers

import (
	"context"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /stats
func HandleStats(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		if !ctx.Tracker.CanAccessAnalytics() {
			return c.Send(
				"🚫 Analytics is not available on the free plan\\.\n\nUpgrade with /plan to see your dashboard\\.",
				utils.MainMenuKeyboard(),
				tele.ModeMarkdownV2,
			)
		}

		cacheCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if cached, err := ctx.Cache.GetDashboard(cacheCtx); err == nil && cached != nil {
			cancel()
			return c.Send(utils.FormatStats(cached), utils.MainMenuKeyboard(), tele.ModeMarkdownV2)
		}
		cancel()

		apiCtx, apiCancel := context.WithTimeout(context.Background(), apiTimeout)
		defer apiCancel()

		stats := ctx.Tracker.LoadDashboard(apiCtx)
		if stats == nil {
			msg := ctx.Tracker.Err()
			ctx.Logger.Error("failed to load dashboard",
				zap.Int64("chat_id", chatID),
				zap.String("error", msg),
			)
			ctx.Tracker.ClearErrors()

			// fall back to the locally archived counts
			countCtx, countCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer countCancel()
			if counts := ctx.Tracker.LocalCounts(countCtx); counts != nil {
				return c.Send(utils.FormatLocalCounts(counts), utils.MainMenuKeyboard(), tele.ModeMarkdownV2)
			}
			return c.Send("😔 Could not load your dashboard. Please try again.")
		}

		storeCtx, storeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer storeCancel()
		if err := ctx.Cache.SetDashboard(storeCtx, stats); err != nil {
			ctx.Logger.Warn("failed to cache dashboard", zap.Error(err))
		}

		return c.Send(
			utils.FormatStats(stats),
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}
