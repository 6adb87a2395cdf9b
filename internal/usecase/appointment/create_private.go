package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreatePrivateAppointmentInput struct {
	ProviderID uint

	// Either ClientID or the inline client fields.
	ClientID    uint
	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePrivateAppointment struct {
	repo      Repository
	admission *Admission
}

func NewCreatePrivateAppointment(
	repo Repository,
	admission *Admission,
) *CreatePrivateAppointment {
	return &CreatePrivateAppointment{
		repo:      repo,
		admission: admission,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePrivateAppointment) Execute(
	ctx context.Context,
	in CreatePrivateAppointmentInput,
) (*models.Appointment, error) {

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

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, err
	}

	actor := in.ProviderID
	return uc.admission.Admit(ctx, AdmitInput{
		Provider: provider,
		Client:   client,
		Service:  service,
		Date:     date,
		Start:    start,
		Notes:    strings.TrimSpace(in.Notes),
		Source:   SourceOwner,
		ActorID:  &actor,
	})
}

func (uc *CreatePrivateAppointment) resolveClient(
	ctx context.Context,
	in CreatePrivateAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		return uc.repo.GetClient(ctx, in.ProviderID, in.ClientID)
	}

	name := strings.TrimSpace(in.ClientName)
	email := validators.NormalizeEmail(in.ClientEmail)

	if name == "" {
		return nil, httperr.Validation("client_required", "Provide client_id or the client's name and email.")
	}
	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.Validation("invalid_email", "Client email is not valid.")
	}

	client, _, err := uc.repo.FindOrCreateClient(ctx, &models.Client{
		ProviderID: in.ProviderID,
		Name:       name,
		Email:      email,
		Phone:      strings.TrimSpace(in.ClientPhone),
	})
	return client, err
}
