// Package form holds the profile edit session: field values seeded from a
// fetched snapshot, validation on submit, and the single outbound
// notification per submit attempt.
package form

import (
	"context"
	"sync"

	"perfil/internal/domain"
	"perfil/internal/errfmt"
	"perfil/internal/validation"

	"github.com/google/uuid"
)

type State string

const (
	StateIdle       State = "idle"
	StateLoaded     State = "loaded"
	StateSubmitting State = "submitting"
)

type Normalizer func(error) string

type Form struct {
	source   domain.ProfileSource
	updater  domain.ProfileUpdater
	notifier domain.Notifier

	normalize Normalizer

	mu        sync.Mutex
	state     State
	snapshot  *domain.ProfileSnapshot
	input     domain.ProfileFormInput
	nameDirty bool
}

type Option func(*Form)

func WithNormalizer(n Normalizer) Option {
	return func(f *Form) { f.normalize = n }
}

func New(source domain.ProfileSource, updater domain.ProfileUpdater, notifier domain.Notifier, opts ...Option) *Form {
	f := &Form{
		source:    source,
		updater:   updater,
		notifier:  notifier,
		normalize: errfmt.Normalize,
		state:     StateIdle,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Values() domain.ProfileFormInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// Load fetches the current profile and seeds the form. Username is always
// kept in sync with the snapshot; name only until the user edits it;
// password fields are never touched. Safe to call repeatedly.
func (f *Form) Load(ctx context.Context) error {
	snapshot, err := f.source.FetchCurrent(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.snapshot = snapshot
	f.input.Username = snapshot.Username
	if !f.nameDirty {
		f.input.Name = snapshot.Name
	}
	if f.state == StateIdle {
		f.state = StateLoaded
	}

	return nil
}

func (f *Form) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.Name = name
	f.nameDirty = true
}

func (f *Form) SetOldPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.OldPassword = password
}

func (f *Form) SetNewPassword(password string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input.NewPassword = password
}

// Submit validates the values as they exist right now and, when they
// pass, performs the update exactly once. Update failures are absorbed
// here: they surface only as a failure notification, never as a returned
// error. Validation failures are returned and nothing is sent.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()

	if f.state == StateSubmitting {
		f.mu.Unlock()
		return domain.ErrSubmitInFlight
	}

	input := f.input

	if fields := validation.Profile(input); len(fields) > 0 {
		f.mu.Unlock()
		return &domain.ValidationError{Fields: fields}
	}

	userID := uuid.Nil
	if f.snapshot != nil {
		userID = f.snapshot.ID
	}

	f.state = StateSubmitting
	f.mu.Unlock()

	err := f.updater.Update(ctx, domain.ProfileUpdateRequest{
		ID:          userID,
		Name:        input.Name,
		OldPassword: input.OldPassword,
		NewPassword: input.NewPassword,
	})

	f.mu.Lock()
	f.state = StateLoaded
	if err == nil {
		f.input.OldPassword = ""
		f.input.NewPassword = ""
		f.nameDirty = false
		if f.snapshot != nil {
			f.snapshot.Name = input.Name
		}
	}
	f.mu.Unlock()

	if err != nil {
		f.notifier.Notify(domain.Notification{
			Variant: domain.NotificationFailure,
			Title:   domain.NotificationTitleProfile,
			Message: f.normalize(err),
		})
		return nil
	}

	f.notifier.Notify(domain.Notification{
		Variant: domain.NotificationSuccess,
		Title:   domain.NotificationTitleProfile,
		Message: "Perfil atualizado com sucesso!",
	})

	return nil
}

// Cancel discards in-progress edits and reseeds from the last snapshot.
// No network call, no notification.
func (f *Form) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.snapshot != nil {
		f.input.Name = f.snapshot.Name
		f.input.Username = f.snapshot.Username
	} else {
		f.input.Name = ""
		f.input.Username = ""
	}
	f.input.OldPassword = ""
	f.input.NewPassword = ""
	f.nameDirty = false
}
