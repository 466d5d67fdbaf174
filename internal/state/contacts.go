package state

import (
	"context"
	"sync"

	"github.com/Govind-Deshmukh/huntoza-sub001/internal/api/huntoza"
	"github.com/Govind-Deshmukh/huntoza-sub001/internal/models"

	"go.uber.org/zap"
)

type ContactService interface {
	ListContacts(ctx context.Context, params huntoza.ContactListParams) (*huntoza.ContactPage, error)
	GetContact(ctx context.Context, contactID string) (*models.Contact, error)
	CreateContact(ctx context.Context, input huntoza.ContactInput) (*models.Contact, error)
	UpdateContact(ctx context.Context, contactID string, input huntoza.ContactInput) (*models.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error
	ToggleContactFavorite(ctx context.Context, contactID string) (*models.Contact, error)
	AddInteraction(ctx context.Context, contactID string, input huntoza.InteractionInput) (*models.Contact, error)
	UpdateInteraction(ctx context.Context, contactID, interactionID string, input huntoza.InteractionInput) (*models.Contact, error)
	DeleteInteraction(ctx context.Context, contactID, interactionID string) (*models.Contact, error)
}

type ContactsSlice struct {
	mu     sync.RWMutex
	svc    ContactService
	logger *zap.Logger

	contacts   []models.Contact
	current    *models.Contact
	loading    bool
	err        string
	pagination Pagination
}

func NewContactsSlice(svc ContactService, logger *zap.Logger) *ContactsSlice {
	return &ContactsSlice{svc: svc, logger: logger}
}

func (s *ContactsSlice) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *ContactsSlice) reject(err error) {
	s.mu.Lock()
	s.loading = false
	s.err = errMessage(err)
	s.mu.Unlock()
}

func (s *ContactsSlice) Load(ctx context.Context, params huntoza.ContactListParams) ([]models.Contact, error) {
	s.begin()

	page, err := s.svc.ListContacts(ctx, sanitizeContactParams(params))
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.contacts = page.Contacts
	s.pagination = Pagination{
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
	}
	s.mu.Unlock()

	return page.Contacts, nil
}

func (s *ContactsSlice) Create(ctx context.Context, input huntoza.ContactInput) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.CreateContact(ctx, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	s.contacts = append([]models.Contact{*contact}, s.contacts...)
	s.pagination.TotalItems++
	s.mu.Unlock()

	return contact, nil
}

func (s *ContactsSlice) Update(ctx context.Context, contactID string, input huntoza.ContactInput) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.UpdateContact(ctx, contactID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*contact)
	return contact, nil
}

func (s *ContactsSlice) Remove(ctx context.Context, contactID string) error {
	s.begin()

	if err := s.svc.DeleteContact(ctx, contactID); err != nil {
		s.reject(err)
		return err
	}

	s.mu.Lock()
	s.loading = false
	kept := s.contacts[:0]
	for _, contact := range s.contacts {
		if contact.ID != contactID {
			kept = append(kept, contact)
		}
	}
	s.contacts = kept
	if s.pagination.TotalItems > 0 {
		s.pagination.TotalItems--
	}
	if s.current != nil && s.current.ID == contactID {
		s.current = nil
	}
	s.mu.Unlock()

	return nil
}

func (s *ContactsSlice) GetByID(ctx context.Context, contactID string) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.GetContact(ctx, contactID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.mu.Lock()
	s.loading = false
	current := *contact
	s.current = &current
	s.mu.Unlock()

	return contact, nil
}

func (s *ContactsSlice) ToggleFavorite(ctx context.Context, contactID string) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.ToggleContactFavorite(ctx, contactID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*contact)
	return contact, nil
}

func (s *ContactsSlice) AddInteraction(ctx context.Context, contactID string, input huntoza.InteractionInput) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.AddInteraction(ctx, contactID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*contact)
	return contact, nil
}

func (s *ContactsSlice) UpdateInteraction(ctx context.Context, contactID, interactionID string, input huntoza.InteractionInput) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.UpdateInteraction(ctx, contactID, interactionID, input)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*contact)
	return contact, nil
}

func (s *ContactsSlice) DeleteInteraction(ctx context.Context, contactID, interactionID string) (*models.Contact, error) {
	s.begin()

	contact, err := s.svc.DeleteInteraction(ctx, contactID, interactionID)
	if err != nil {
		s.reject(err)
		return nil, err
	}

	s.replace(*contact)
	return contact, nil
}

func (s *ContactsSlice) replace(contact models.Contact) {
	s.mu.Lock()
	s.loading = false
	found := false
	for i := range s.contacts {
		if s.contacts[i].ID == contact.ID {
			s.contacts[i] = contact
			found = true
			break
		}
	}
	if s.current != nil && s.current.ID == contact.ID {
		current := contact
		s.current = &current
	}
	s.mu.Unlock()

	if !found {
		s.logger.Debug("updated contact not in local list", zap.String("contact_id", contact.ID))
	}
}

func (s *ContactsSlice) Contacts() []models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contacts := make([]models.Contact, len(s.contacts))
	copy(contacts, s.contacts)
	return contacts
}

func (s *ContactsSlice) Current() *models.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

func (s *ContactsSlice) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *ContactsSlice) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *ContactsSlice) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *ContactsSlice) Pagination() Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *ContactsSlice) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination.TotalItems
}
