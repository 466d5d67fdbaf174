package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/access"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/bot/utils"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	formContact     = "contact"
	contactsPerPage = 5
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
}

// /contacts
func HandleContacts(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		chatID := c.Sender().ID

		if err := clearChatState(ctx, chatID); err != nil {
			ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
		}

		message := "👥 *Contacts*\n\n"
		message += "What do you want to do?"

		return c.Send(
			message,
			utils.ContactsMenuKeyboard(),
			tele.ModeMarkdown,
		)
	}
}

func listContacts(ctx *Context, c tele.Context, page int) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	contacts := ctx.Tracker.LoadContacts(apiCtx, huntoza.ContactListParams{
		Page:  page,
		Limit: contactsPerPage,
	})
	if contacts == nil {
		if msg := ctx.Tracker.Err(); msg != "" {
			ctx.Logger.Error("failed to load contacts",
				zap.Int64("chat_id", chatID),
				zap.String("error", msg),
			)
			ctx.Tracker.ClearErrors()
			return c.Send("😔 Could not load your contacts. Please try again.")
		}
	}

	if len(contacts) == 0 {
		return c.Send(utils.FormatNoContactsMessage(), tele.ModeMarkdownV2)
	}

	pagination := ctx.Tracker.ContactsPagination()

	summary := utils.FormatContactList(contacts, pagination.TotalItems)
	if err := c.Send(summary, tele.ModeMarkdownV2); err != nil {
		ctx.Logger.Error("failed to send contact list", zap.Error(err))
		return c.Send("😔 Could not send your contacts.")
	}

	for i := range contacts {
		contact := &contacts[i]
		message := utils.FormatContact(contact)
		keyboard := utils.InlineContactKeyboard(contact.ID, contact.Favorite)

		if _, err := c.Bot().Send(
			c.Chat(),
			message,
			&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: keyboard},
		); err != nil {
			ctx.Logger.Error("failed to send contact card",
				zap.String("contact_id", contact.ID),
				zap.Error(err),
			)
			continue
		}

		if i < len(contacts)-1 {
			time.Sleep(cardSendGap)
		}
	}

	if pagination.TotalPages > 1 {
		text := fmt.Sprintf("📄 Page %d of %d", pagination.CurrentPage, pagination.TotalPages)
		if err := c.Send(text, utils.InlinePaginationKeyboard(pagination.CurrentPage, pagination.TotalPages, "contacts_page")); err != nil {
			ctx.Logger.Warn("failed to send pagination controls", zap.Error(err))
		}
	}

	return nil
}

// ==================== Add Contact Form ====================

func startContactForm(ctx *Context, c tele.Context) error {
	chatID := c.Sender().ID

	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formContact); err != nil {
		ctx.Logger.Debug("no contact draft to clear", zap.Error(err))
	}

	if err := setChatState(ctx, chatID, StateAwaitingContactName); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send(
		"👤 What is the contact's name?",
		utils.CancelKeyboard(),
	)
}

func handleContactNameInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	if text == "" {
		return c.Send("Name is required. Please enter the name:", utils.CancelKeyboard())
	}

	draft := &contactDraft{Name: text}
	if err := saveContactDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save contact draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingContactEmail); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("📧 What is their email? (or skip)", utils.SkipKeyboard())
}

func handleContactEmailInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	draft, err := loadContactDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load contact draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	if text != "⏭ Skip" {
		if !emailRegexp.MatchString(text) {
			return c.Send("That does not look like an email. Try again or skip:", utils.SkipKeyboard())
		}
		draft.Email = text
	}

	if err := saveContactDraft(ctx, chatID, draft); err != nil {
		ctx.Logger.Error("failed to save contact draft", zap.Error(err))
		return c.Send("😔 Something went wrong. Please try again.")
	}

	if err := setChatState(ctx, chatID, StateAwaitingContactCompany); err != nil {
		ctx.Logger.Error("failed to set chat state", zap.Error(err))
	}

	return c.Send("🏢 Which company are they at? (or skip)", utils.SkipKeyboard())
}

func handleContactCompanyInput(ctx *Context, c tele.Context) error {
	text := strings.TrimSpace(c.Text())
	chatID := c.Sender().ID

	draft, err := loadContactDraft(ctx, chatID)
	if err != nil {
		ctx.Logger.Error("failed to load contact draft", zap.Error(err))
		return cancelConversation(ctx, c)
	}

	if text != "⏭ Skip" {
		draft.Company = text
	}

	return submitContactForm(ctx, c, draft)
}

func submitContactForm(ctx *Context, c tele.Context, draft *contactDraft) error {
	chatID := c.Sender().ID

	apiCtx, cancel := context.WithTimeout(context.Background(), apiTimeout)
	defer cancel()

	input := huntoza.ContactInput{
		Name:    draft.Name,
		Email:   draft.Email,
		Company: draft.Company,
	}

	contact, err := ctx.Tracker.CreateContact(apiCtx, input)
	if err != nil {
		var limitErr *access.LimitError
		if errors.As(err, &limitErr) {
			clearContactForm(ctx, chatID)
			return c.Send(
				fmt.Sprintf("🚫 %s\n\nUpgrade your plan with /plan to add more.", limitErr.Error()),
				utils.ContactsMenuKeyboard(),
			)
		}

		ctx.Logger.Error("failed to create contact",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)

		// keep the form open so the answers are not lost
		return c.Send(
			"😔 Could not save the contact. Send the company again or press ⏭ Skip.",
			utils.SkipKeyboard(),
		)
	}

	clearContactForm(ctx, chatID)

	if err := c.Send(
		fmt.Sprintf("✅ Contact saved: *%s*", utils.EscapeMarkdown(contact.Name)),
		utils.ContactsMenuKeyboard(),
		tele.ModeMarkdownV2,
	); err != nil {
		return err
	}

	return c.Send(
		utils.FormatContact(contact),
		&tele.SendOptions{ParseMode: tele.ModeMarkdownV2, ReplyMarkup: utils.InlineContactKeyboard(contact.ID, contact.Favorite)},
	)
}

func saveContactDraft(ctx *Context, chatID int64, draft *contactDraft) error {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	return ctx.Cache.SetFormDraft(cacheCtx, chatID, formContact, draft)
}

func loadContactDraft(ctx *Context, chatID int64) (*contactDraft, error) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	var draft contactDraft
	if err := ctx.Cache.GetFormDraft(cacheCtx, chatID, formContact, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

func clearContactForm(ctx *Context, chatID int64) {
	cacheCtx, cancel := context.WithTimeout(context.Background(), draftTimeout)
	defer cancel()

	if err := ctx.Cache.DeleteFormDraft(cacheCtx, chatID, formContact); err != nil {
		ctx.Logger.Debug("failed to clear contact draft", zap.Error(err))
	}

	if err := clearChatState(ctx, chatID); err != nil {
		ctx.Logger.Warn("failed to clear chat state", zap.Error(err))
	}
}
