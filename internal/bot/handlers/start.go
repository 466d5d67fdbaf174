package handlers

import (
	"context"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// /start command
func HandleStart(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID
		userName := c.Sender().Username
		firstName := c.Sender().FirstName
		lastName := c.Sender().LastName

		ctx.Logger.Info("chat started bot",
			zap.Int64("chat_id", chatID),
			zap.String("username", userName),
		)

		dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		chat, err := ctx.Store.GetChat(dbCtx, chatID)
		if err != nil {
			ctx.Logger.Error("get chat failed", zap.Int64("chat_id", chatID), zap.Error(err))
			return c.Send("😔 Something went wrong. Please try again later.")
		}

		if chat == nil {
			chat = &models.Chat{
				ID:             chatID,
				Username:       stringPtr(userName),
				FirstName:      stringPtr(firstName),
				LastName:       stringPtr(lastName),
				RemindEnabled:  true,
				RemindInterval: 60, // 1h
			}
			if err := ctx.Store.CreateChat(dbCtx, chat); err != nil {
				ctx.Logger.Error("failed to create chat", zap.Int64("chat_id", chatID), zap.Error(err))
				return c.Send("😔 Registration failed. Please try again later.")
			}
			ctx.Logger.Info("new chat created", zap.Int64("chat_id", chatID))
		} else {
			needUpdate := false
			if (chat.Username == nil && userName != "") || (chat.Username != nil && *chat.Username != userName) {
				chat.Username = stringPtr(userName)
				needUpdate = true
			}
			if (chat.FirstName == nil && firstName != "") || (chat.FirstName != nil && *chat.FirstName != firstName) {
				chat.FirstName = stringPtr(firstName)
				needUpdate = true
			}
			if (chat.LastName == nil && lastName != "") || (chat.LastName != nil && *chat.LastName != lastName) {
				chat.LastName = stringPtr(lastName)
				needUpdate = true
			}
			if needUpdate {
				if err := ctx.Store.UpdateChat(dbCtx, chat); err != nil {
					ctx.Logger.Warn("failed to update chat meta", zap.Int64("chat_id", chatID), zap.Error(err))
				}
			}
			ctx.Logger.Debug("existing chat", zap.Int64("chat_id", chatID))
		}

		welcomeMsg := utils.FormatWelcomeMessage(firstName)

		return c.Send(
			welcomeMsg,
			utils.MainMenuKeyboard(),
			tele.ModeMarkdownV2,
		)
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
