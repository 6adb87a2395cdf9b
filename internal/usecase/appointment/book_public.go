package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

type BookPublicInput struct {
	ProviderID uint
	ServiceID  uint

	Name     string
	Email    string
	Phone    string
	Whatsapp string

	Date  string
	Time  string
	Notes string
}

// BookPublic is the unauthenticated booking gateway. A visitor becomes a
// client of the provider (matched by email, case-insensitive) before the
// candidate goes through admission. The client record is kept even when
// admission rejects the slot.
type BookPublic struct {
	repo      Repository
	admission *Admission
}

func NewBookPublic(repo Repository, admission *Admission) *BookPublic {
	return &BookPublic{
		repo:      repo,
		admission: admission,
	}
}

func (uc *BookPublic) Execute(
	ctx context.Context,
	in BookPublicInput,
) (*models.Appointment, error) {

	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)

	if name == "" {
		return nil, httperr.Validation("name_required", "Name is required.")
	}
	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.Validation("invalid_email", "Email is not valid.")
	}

	date, start, err := ParseSlot(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.ProviderID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}

	client, _, err := uc.repo.FindOrCreateClient(ctx, &models.Client{
		ProviderID: in.ProviderID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(in.Phone),
		Whatsapp:   strings.TrimSpace(in.Whatsapp),
	})
	if err != nil {
		return nil, err
	}

	return uc.admission.Admit(ctx, AdmitInput{
		Provider: provider,
		Client:   client,
		Service:  service,
		Date:     date,
		Start:    start,
		Notes:    strings.TrimSpace(in.Notes),
		Source:   SourcePublic,
	})
}
