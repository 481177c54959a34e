package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"perfil/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	snapshot domain.ProfileSnapshot
	err      error
	calls    int
}

func (s *stubSource) FetchCurrent(ctx context.Context) (*domain.ProfileSnapshot, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	snapshot := s.snapshot
	return &snapshot, nil
}

type stubUpdater struct {
	mu      sync.Mutex
	err     error
	calls   int
	last    domain.ProfileUpdateRequest
	started chan struct{}
	release chan struct{}
}

func (u *stubUpdater) Update(ctx context.Context, req domain.ProfileUpdateRequest) error {
	u.mu.Lock()
	u.calls++
	u.last = req
	u.mu.Unlock()

	if u.started != nil {
		close(u.started)
	}
	if u.release != nil {
		<-u.release
	}

	return u.err
}

type recordNotifier struct {
	mu     sync.Mutex
	events []domain.Notification
}

func (n *recordNotifier) Notify(event domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordNotifier) all() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Notification(nil), n.events...)
}

func newLoadedForm(t *testing.T) (*Form, *stubSource, *stubUpdater, *recordNotifier) {
	t.Helper()

	source := &stubSource{snapshot: domain.ProfileSnapshot{
		ID:       uuid.New(),
		Name:     "Ana Silva",
		Username: "ana",
	}}
	updater := &stubUpdater{}
	notifier := &recordNotifier{}

	f := New(source, updater, notifier)
	require.NoError(t, f.Load(context.Background()))
	require.Equal(t, StateLoaded, f.State())

	return f, source, updater, notifier
}

func TestLoadSeedsNameAndUsername(t *testing.T) {
	f, source, _, _ := newLoadedForm(t)

	values := f.Values()
	assert.Equal(t, source.snapshot.Name, values.Name)
	assert.Equal(t, source.snapshot.Username, values.Username)
	assert.Empty(t, values.OldPassword)
	assert.Empty(t, values.NewPassword)
}

func TestLoadIsIdempotent(t *testing.T) {
	f, _, _, _ := newLoadedForm(t)

	f.SetOldPassword("abc123")
	f.SetNewPassword("Senha123")

	require.NoError(t, f.Load(context.Background()))

	values := f.Values()
	assert.Equal(t, "Ana Silva", values.Name)
	assert.Equal(t, "ana", values.Username)
	assert.Equal(t, "abc123", values.OldPassword)
	assert.Equal(t, "Senha123", values.NewPassword)
}

func TestLoadKeepsInProgressNameEdit(t *testing.T) {
	f, _, _, _ := newLoadedForm(t)

	f.SetName("Maria Souza")
	require.NoError(t, f.Load(context.Background()))

	assert.Equal(t, "Maria Souza", f.Values().Name)
}

func TestLoadPropagatesFetchError(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	f := New(source, &stubUpdater{}, &recordNotifier{})

	err := f.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateIdle, f.State())
}

func TestSubmitSuccess(t *testing.T) {
	f, source, updater, notifier := newLoadedForm(t)

	require.NoError(t, f.Submit(context.Background()))

	require.Equal(t, 1, updater.calls)
	assert.Equal(t, source.snapshot.ID, updater.last.ID)
	assert.Equal(t, "Ana Silva", updater.last.Name)
	assert.Empty(t, updater.last.OldPassword)
	assert.Empty(t, updater.last.NewPassword)

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationSuccess, events[0].Variant)
	assert.Equal(t, "Perfil", events[0].Title)
	assert.Equal(t, "Perfil atualizado com sucesso!", events[0].Message)

	assert.Equal(t, StateLoaded, f.State())
}

func TestSubmitClearsPasswordsOnSuccess(t *testing.T) {
	f, _, updater, _ := newLoadedForm(t)

	f.SetOldPassword("Senha123")
	f.SetNewPassword("NovaSenha1")

	require.NoError(t, f.Submit(context.Background()))

	require.Equal(t, 1, updater.calls)
	assert.Equal(t, "Senha123", updater.last.OldPassword)
	assert.Equal(t, "NovaSenha1", updater.last.NewPassword)

	values := f.Values()
	assert.Empty(t, values.OldPassword)
	assert.Empty(t, values.NewPassword)
}

func TestSubmitNameTooShort(t *testing.T) {
	f, _, updater, notifier := newLoadedForm(t)

	f.SetName("Jo")
	err := f.Submit(context.Background())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Digite o nome completo.", validationErr.Fields["name"])

	assert.Zero(t, updater.calls)
	assert.Empty(t, notifier.all())
	assert.Equal(t, StateLoaded, f.State())
}

func TestSubmitOldPasswordWithoutNew(t *testing.T) {
	f, _, updater, notifier := newLoadedForm(t)

	f.SetOldPassword("abc123")
	err := f.Submit(context.Background())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Nova senha é obrigatória se a senha antiga for fornecida", validationErr.Fields["newPassword"])

	assert.Zero(t, updater.calls)
	assert.Empty(t, notifier.all())
}

func TestSubmitUpdateFailureIsAbsorbed(t *testing.T) {
	f, _, updater, notifier := newLoadedForm(t)
	updater.err = context.DeadlineExceeded

	f.SetOldPassword("Senha123")
	f.SetNewPassword("NovaSenha1")

	require.NoError(t, f.Submit(context.Background()))

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, domain.NotificationFailure, events[0].Variant)
	assert.Equal(t, "Perfil", events[0].Title)
	assert.Equal(t, "Tempo de conexão esgotado, tente novamente.", events[0].Message)

	// Failed submits keep the typed values so the user can retry.
	values := f.Values()
	assert.Equal(t, "Senha123", values.OldPassword)
	assert.Equal(t, "NovaSenha1", values.NewPassword)
	assert.Equal(t, StateLoaded, f.State())
}

func TestSubmitUsesCustomNormalizer(t *testing.T) {
	source := &stubSource{snapshot: domain.ProfileSnapshot{ID: uuid.New(), Name: "Ana Silva", Username: "ana"}}
	updater := &stubUpdater{err: errors.New("boom")}
	notifier := &recordNotifier{}

	f := New(source, updater, notifier, WithNormalizer(func(err error) string {
		return "custom: " + err.Error()
	}))
	require.NoError(t, f.Load(context.Background()))

	require.NoError(t, f.Submit(context.Background()))

	events := notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, "custom: boom", events[0].Message)
}

func TestSubmitWithoutLoadedProfileUsesSentinelID(t *testing.T) {
	updater := &stubUpdater{}
	f := New(&stubSource{}, updater, &recordNotifier{})

	f.SetName("Ana Silva")
	require.NoError(t, f.Submit(context.Background()))

	require.Equal(t, 1, updater.calls)
	assert.Equal(t, uuid.Nil, updater.last.ID)
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	f, _, updater, notifier := newLoadedForm(t)
	updater.started = make(chan struct{})
	updater.release = make(chan struct{})

	done := make(chan error, 1)
	go func() {
		done <- f.Submit(context.Background())
	}()

	select {
	case <-updater.started:
	case <-time.After(time.Second):
		t.Fatal("first submit never reached the updater")
	}

	assert.Equal(t, StateSubmitting, f.State())
	assert.ErrorIs(t, f.Submit(context.Background()), domain.ErrSubmitInFlight)

	close(updater.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, updater.calls)
	assert.Len(t, notifier.all(), 1)
}

func TestCancelReseedsFromSnapshot(t *testing.T) {
	f, source, updater, notifier := newLoadedForm(t)

	f.SetName("Maria Souza")
	f.SetOldPassword("abc123")
	f.SetNewPassword("Senha123")

	f.Cancel()

	values := f.Values()
	assert.Equal(t, source.snapshot.Name, values.Name)
	assert.Equal(t, source.snapshot.Username, values.Username)
	assert.Empty(t, values.OldPassword)
	assert.Empty(t, values.NewPassword)

	assert.Zero(t, updater.calls)
	assert.Empty(t, notifier.all())
}
