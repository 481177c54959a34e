// Package errfmt turns heterogeneous failure values into one stable,
// user-facing string.
package errfmt

import (
	"context"
	"errors"
	"net"

	"perfil/internal/domain"
)

const fallback = "Ocorreu um erro ao atualizar o perfil, tente novamente."

// APIError is the error payload shape returned by the REST API.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Normalize maps an arbitrary transport or domain error to a single
// display message. It never returns an empty string for a non-nil error.
func Normalize(err error) string {
	if err == nil {
		return ""
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCurrentPassword):
		return "Senha antiga incorreta."
	case errors.Is(err, domain.ErrUserNotFound):
		return "Usuário não encontrado."
	case errors.Is(err, domain.ErrUnauthorized):
		return "Sessão expirada, faça login novamente."
	case errors.Is(err, context.DeadlineExceeded):
		return "Tempo de conexão esgotado, tente novamente."
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "Tempo de conexão esgotado, tente novamente."
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "Não foi possível conectar ao servidor."
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return fallback
}
