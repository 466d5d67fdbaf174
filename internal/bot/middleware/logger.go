package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logger logs every update with its outcome and handling time.
func Logger(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()

			var chatID int64
			var username string
			if sender := c.Sender(); sender != nil {
				chatID = sender.ID
				username = sender.Username
			}

			kind, text := "message", ""
			if msg := c.Message(); msg != nil {
				text = msg.Text
			}
			if cb := c.Callback(); cb != nil {
				kind, text = "callback", cb.Data
			}

			err := next(c)

			fields := []zap.Field{
				zap.Int64("chat_id", chatID),
				zap.String("username", username),
				zap.String("kind", kind),
				zap.String("text", text),
				zap.Duration("took", time.Since(start)),
			}

			if err != nil {
				logger.Error("update failed", append(fields, zap.Error(err))...)
				return err
			}

			logger.Info("update handled", fields...)
			return nil
		}
	}
}
