package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{InvalidArgument("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Forbidden("x"), http.StatusForbidden},
		{Unauthorized("x"), http.StatusUnauthorized},
		{Internal("x", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus())
	}
}

func TestFromPassesThroughClassifiedErrors(t *testing.T) {
	orig := Conflict("já existe")
	wrapped := fmt.Errorf("em transação: %w", orig)

	got := From(wrapped, "mensagem genérica")
	assert.Equal(t, KindConflict, got.Kind)
	assert.Equal(t, "já existe", got.Message)
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	cause := errors.New("conexão recusada")

	got := From(cause, "Falha na operação.")
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "Falha na operação.", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestIsKind(t *testing.T) {
	err := fmt.Errorf("camada acima: %w", NotFound("sumiu"))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(errors.New("solto"), KindNotFound))
}
