package models

import "time"

// Chat is a Telegram chat registered with the bot.
type Chat struct {
	ID             int64      `db:"id"`
	Username       *string    `db:"username"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	CreatedAt      time.Time  `db:"created_at"`
	LastRemind     *time.Time `db:"last_remind"`
	RemindEnabled  bool       `db:"remind_enabled"`
	RemindInterval int        `db:"remind_interval"` // in min
}
