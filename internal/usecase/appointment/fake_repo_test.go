package appointment

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
	"github.com/BruksfildServices01/appointment-scheduler/internal/models"
)

type ruleKey struct {
	providerID uint
	weekday    time.Weekday
}

type dayKey struct {
	providerID uint
	date       string
}

// fakeRepo is an in-memory Repository. WithinDay serializes on a mutex per
// (provider, date) and stages writes so a failing callback leaves the store
// untouched.
type fakeRepo struct {
	mu   sync.Mutex
	days map[dayKey]*sync.Mutex

	providers    map[uint]models.Provider
	services     map[uint]models.Service
	clients      map[uint]models.Client
	rules        map[ruleKey]models.AvailabilityRule
	appointments map[uint]models.Appointment

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		days:         map[dayKey]*sync.Mutex{},
		providers:    map[uint]models.Provider{},
		services:     map[uint]models.Service{},
		clients:      map[uint]models.Client{},
		rules:        map[ruleKey]models.AvailabilityRule{},
		appointments: map[uint]models.Appointment{},
		nextID:       100,
	}
}

func (r *fakeRepo) id() uint {
	r.nextID++
	return r.nextID
}

func (r *fakeRepo) addProvider(p models.Provider) *models.Provider {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.ID] = p
	return &p
}

func (r *fakeRepo) addService(s models.Service) *models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[s.ID] = s
	return &s
}

func (r *fakeRepo) addRule(providerID uint, weekday time.Weekday, intervals ...availability.Interval) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[ruleKey{providerID, weekday}] = models.AvailabilityRule{
		ProviderID: providerID,
		Weekday:    int(weekday),
		Enabled:    true,
		Intervals:  intervals,
	}
}

func (r *fakeRepo) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *fakeRepo) stored(id uint) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

// -------- DayReader --------

func (r *fakeRepo) GetRule(_ context.Context, providerID uint, weekday time.Weekday) (*models.AvailabilityRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rule, ok := r.rules[ruleKey{providerID, weekday}]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func (r *fakeRepo) ListActive(_ context.Context, providerID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProviderID == providerID && ap.Date == date && ap.Status.Active() {
			out = append(out, r.loaded(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartMinute < out[j].StartMinute })
	return out, nil
}

// -------- Repository --------

func (r *fakeRepo) GetProvider(_ context.Context, providerID uint) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[providerID]
	if !ok {
		return nil, httperr.ErrNotFound("provider_not_found", "Provider not found.")
	}
	return &p, nil
}

func (r *fakeRepo) GetService(_ context.Context, providerID, serviceID uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[serviceID]
	if !ok || s.ProviderID != providerID {
		return nil, httperr.ErrNotFound("service_not_found", "Service not found.")
	}
	return &s, nil
}

func (r *fakeRepo) GetClient(_ context.Context, providerID, clientID uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[clientID]
	if !ok || c.ProviderID != providerID {
		return nil, httperr.ErrNotFound("client_not_found", "Client not found.")
	}
	return &c, nil
}

func (r *fakeRepo) FindOrCreateClient(_ context.Context, client *models.Client) (*models.Client, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ProviderID == client.ProviderID && strings.EqualFold(c.Email, client.Email) {
			found := c
			return &found, false, nil
		}
	}
	c := *client
	c.ID = r.id()
	r.clients[c.ID] = c
	return &c, true, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, providerID, appointmentID uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.ProviderID != providerID {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	ap = r.loaded(ap)
	return &ap, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, providerID uint, filter ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ProviderID != providerID {
			continue
		}
		if filter.FromDate != "" && ap.Date < filter.FromDate {
			continue
		}
		if filter.ToDate != "" && ap.Date > filter.ToDate {
			continue
		}
		if filter.Status != "" && ap.Status != filter.Status {
			continue
		}
		out = append(out, r.loaded(ap))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartMinute < out[j].StartMinute
	})
	return out, nil
}

func (r *fakeRepo) dayLock(providerID uint, date string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := dayKey{providerID, date}
	m, ok := r.days[k]
	if !ok {
		m = &sync.Mutex{}
		r.days[k] = m
	}
	return m
}

func (r *fakeRepo) WithinDay(_ context.Context, providerID uint, date string, fn func(Ledger) error) error {
	day := r.dayLock(providerID, date)
	day.Lock()
	defer day.Unlock()

	l := &fakeLedger{fakeRepo: r}
	if err := fn(l); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range l.writes {
		ap.Client = models.Client{}
		ap.Service = models.Service{}
		r.appointments[ap.ID] = *ap
	}
	return nil
}

// loaded must be called with mu held.
func (r *fakeRepo) loaded(ap models.Appointment) models.Appointment {
	ap.Client = r.clients[ap.ClientID]
	ap.Service = r.services[ap.ServiceID]
	return ap
}

type fakeLedger struct {
	*fakeRepo
	writes []*models.Appointment
}

func (l *fakeLedger) LockAppointment(ctx context.Context, providerID, appointmentID uint) (*models.Appointment, error) {
	return l.GetAppointment(ctx, providerID, appointmentID)
}

func (l *fakeLedger) Insert(_ context.Context, ap *models.Appointment) error {
	l.mu.Lock()
	ap.ID = l.id()
	l.mu.Unlock()
	ap.CreatedAt = time.Now()
	l.writes = append(l.writes, ap)
	return nil
}

func (l *fakeLedger) Save(_ context.Context, ap *models.Appointment) error {
	cp := *ap
	l.writes = append(l.writes, &cp)
	return nil
}

// -------- audit --------

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
