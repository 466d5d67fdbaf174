package utils

import (
	"strconv"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	tele "gopkg.in/telebot.v3"
)

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnJobs := menu.Text("📋 Applications")
	btnTasks := menu.Text("✅ Tasks")
	btnContacts := menu.Text("👥 Contacts")
	btnStats := menu.Text("📊 Dashboard")
	btnPlan := menu.Text("💳 Plan")
	btnHelp := menu.Text("❓ Help")

	menu.Reply(
		menu.Row(btnJobs, btnTasks),
		menu.Row(btnContacts, btnStats),
		menu.Row(btnPlan, btnHelp),
	)

	return menu
}

func JobsMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnList := menu.Text("📋 List applications")
	btnAdd := menu.Text("➕ Add application")
	btnBack := menu.Text("◀️ Back")

	menu.Reply(
		menu.Row(btnList, btnAdd),
		menu.Row(btnBack),
	)

	return menu
}

func TasksMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnList := menu.Text("✅ List tasks")
	btnAdd := menu.Text("➕ Add task")
	btnBack := menu.Text("◀️ Back")

	menu.Reply(
		menu.Row(btnList, btnAdd),
		menu.Row(btnBack),
	)

	return menu
}

func ContactsMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnList := menu.Text("👥 List contacts")
	btnAdd := menu.Text("➕ Add contact")
	btnBack := menu.Text("◀️ Back")

	menu.Reply(
		menu.Row(btnList, btnAdd),
		menu.Row(btnBack),
	)

	return menu
}

func JobStatusKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	var rows []tele.Row

	for _, status := range models.JobStatuses() {
		btn := menu.Text(StatusDisplayName(status))
		rows = append(rows, menu.Row(btn))
	}

	btnCancel := menu.Text("❌ Cancel")
	rows = append(rows, menu.Row(btnCancel))

	menu.Reply(rows...)

	return menu
}

func PriorityKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnHigh := menu.Text("high")
	btnMedium := menu.Text("medium")
	btnLow := menu.Text("low")
	btnCancel := menu.Text("❌ Cancel")

	menu.Reply(
		menu.Row(btnHigh, btnMedium, btnLow),
		menu.Row(btnCancel),
	)

	return menu
}

func CancelKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnCancel := menu.Text("❌ Cancel")
	menu.Reply(menu.Row(btnCancel))

	return menu
}

func SkipKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	btnSkip := menu.Text("⏭ Skip")
	btnCancel := menu.Text("❌ Cancel")

	menu.Reply(menu.Row(btnSkip, btnCancel))

	return menu
}

func InlineJobKeyboard(jobID string, favorite bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	star := "⭐ Favorite"
	if favorite {
		star = "☆ Unfavorite"
	}

	btnFavorite := menu.Data(star, "job_favorite", jobID)
	btnDelete := menu.Data("🗑 Delete", "job_delete", jobID)

	menu.Inline(
		menu.Row(btnFavorite, btnDelete),
	)

	return menu
}

func InlineTaskKeyboard(taskID string, completed bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	var buttons []tele.Btn
	if !completed {
		buttons = append(buttons, menu.Data("✅ Complete", "task_complete", taskID))
	}
	buttons = append(buttons, menu.Data("🗑 Delete", "task_delete", taskID))

	menu.Inline(menu.Row(buttons...))

	return menu
}

func InlineContactKeyboard(contactID string, favorite bool) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	star := "⭐ Favorite"
	if favorite {
		star = "☆ Unfavorite"
	}

	btnFavorite := menu.Data(star, "contact_favorite", contactID)
	btnDelete := menu.Data("🗑 Delete", "contact_delete", contactID)

	menu.Inline(
		menu.Row(btnFavorite, btnDelete),
	)

	return menu
}

func InlinePaginationKeyboard(page, totalPages int, callbackPrefix string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	// no pagination needed
	if totalPages <= 1 {
		return menu
	}

	var buttons []tele.Btn

	if page > 1 {
		btnPrev := menu.Data("⬅️ Prev", callbackPrefix+"_prev", strconv.Itoa(page-1))
		buttons = append(buttons, btnPrev)
	}

	btnCurrent := menu.Data(strconv.Itoa(page)+"/"+strconv.Itoa(totalPages), callbackPrefix+"_current", "noop")
	buttons = append(buttons, btnCurrent)

	if page < totalPages {
		btnNext := menu.Data("Next ➡️", callbackPrefix+"_next", strconv.Itoa(page+1))
		buttons = append(buttons, btnNext)
	}

	menu.Inline(menu.Row(buttons...))
	return menu
}

// ConfirmKeyboard replaces a card's actions while a destructive action waits
// for confirmation. Yes re-fires the action with "_yes" appended, No with
// "_no".
func ConfirmKeyboard(action, payload string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}

	btnYes := menu.Data("✅ Yes, delete", action+"_yes", payload)
	btnNo := menu.Data("❌ No", action+"_no", payload)

	menu.Inline(menu.Row(btnYes, btnNo))

	return menu
}
