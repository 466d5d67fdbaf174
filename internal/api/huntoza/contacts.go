package huntoza

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type ContactListParams struct {
	Relationship string
	Search       string
	Favorite     bool
	Sort         string
	Page         int
	Limit        int
}

type ContactPage struct {
	Contacts    []models.Contact
	CurrentPage int
	TotalPages  int
	TotalItems  int
}

type ContactInput struct {
	Name         string     `json:"name,omitempty"`
	Relationship string     `json:"relationship,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Company      string     `json:"company,omitempty"`
	Position     string     `json:"position,omitempty"`
	LinkedIn     string     `json:"linkedIn,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type InteractionInput struct {
	Date  time.Time `json:"date"`
	Type  string    `json:"interactionType"`
	Notes string    `json:"notes,omitempty"`
}

type contactListResponse struct {
	Contacts      []models.Contact `json:"contacts"`
	CurrentPage   int              `json:"currentPage"`
	NumOfPages    int              `json:"numOfPages"`
	TotalContacts int              `json:"totalContacts"`
}

type contactResponse struct {
	Contact models.Contact `json:"contact"`
}

func (c *Client) ListContacts(ctx context.Context, params ContactListParams) (*ContactPage, error) {
	q := url.Values{}
	if params.Relationship != "" {
		q.Set("relationship", params.Relationship)
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Favorite {
		q.Set("favorite", "true")
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}

	var resp contactListResponse
	if err := c.get(ctx, "/contacts", q, &resp); err != nil {
		c.logger.Error("failed to list contacts",
			zap.String("relationship", params.Relationship),
			zap.Int("page", params.Page),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	c.logger.Debug("contacts listed",
		zap.Int("returned", len(resp.Contacts)),
		zap.Int("total", resp.TotalContacts),
	)

	return &ContactPage{
		Contacts:    resp.Contacts,
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.NumOfPages,
		TotalItems:  resp.TotalContacts,
	}, nil
}

func (c *Client) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	var resp contactResponse
	if err := c.get(ctx, "/contacts/"+contactID, nil, &resp); err != nil {
		c.logger.Error("failed to get contact", zap.String("contact_id", contactID), zap.Error(err))
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return &resp.Contact, nil
}

func (c *Client) CreateContact(ctx context.Context, input ContactInput) (*models.Contact, error) {
	var resp contactResponse
	if err := c.post(ctx, "/contacts", input, &resp); err != nil {
		c.logger.Error("failed to create contact", zap.String("name", input.Name), zap.Error(err))
		return nil, fmt.Errorf("create contact: %w", err)
	}

	c.logger.Info("contact created",
		zap.String("contact_id", resp.Contact.ID),
		zap.String("name", resp.Contact.Name),
	)

	return &resp.Contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, contactID string, input ContactInput) (*models.Contact, error) {
	var resp contactResponse
	if err := c.patch(ctx, "/contacts/"+contactID, input, &resp); err != nil {
		c.logger.Error("failed to update contact", zap.String("contact_id", contactID), zap.Error(err))
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return &resp.Contact, nil
}

func (c *Client) DeleteContact(ctx context.Context, contactID string) error {
	if err := c.delete(ctx, "/contacts/"+contactID, nil); err != nil {
		c.logger.Error("failed to delete contact", zap.String("contact_id", contactID), zap.Error(err))
		return fmt.Errorf("delete contact: %w", err)
	}

	c.logger.Info("contact deleted", zap.String("contact_id", contactID))

	return nil
}

func (c *Client) ToggleContactFavorite(ctx context.Context, contactID string) (*models.Contact, error) {
	var resp contactResponse
	if err := c.patch(ctx, "/contacts/"+contactID+"/favorite", nil, &resp); err != nil {
		c.logger.Error("failed to toggle contact favorite",
			zap.String("contact_id", contactID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("toggle contact favorite: %w", err)
	}
	return &resp.Contact, nil
}

func (c *Client) AddInteraction(ctx context.Context, contactID string, input InteractionInput) (*models.Contact, error) {
	var resp contactResponse
	if err := c.post(ctx, "/contacts/"+contactID+"/interactions", input, &resp); err != nil {
		c.logger.Error("failed to add interaction", zap.String("contact_id", contactID), zap.Error(err))
		return nil, fmt.Errorf("add interaction: %w", err)
	}
	return &resp.Contact, nil
}

func (c *Client) UpdateInteraction(ctx context.Context, contactID, interactionID string, input InteractionInput) (*models.Contact, error) {
	var resp contactResponse
	path := "/contacts/" + contactID + "/interactions/" + interactionID
	if err := c.patch(ctx, path, input, &resp); err != nil {
		c.logger.Error("failed to update interaction",
			zap.String("contact_id", contactID),
			zap.String("interaction_id", interactionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update interaction: %w", err)
	}
	return &resp.Contact, nil
}

func (c *Client) DeleteInteraction(ctx context.Context, contactID, interactionID string) (*models.Contact, error) {
	var resp contactResponse
	path := "/contacts/" + contactID + "/interactions/" + interactionID
	if err := c.delete(ctx, path, &resp); err != nil {
		c.logger.Error("failed to delete interaction",
			zap.String("contact_id", contactID),
			zap.String("interaction_id", interactionID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("delete interaction: %w", err)
	}
	return &resp.Contact, nil
}
