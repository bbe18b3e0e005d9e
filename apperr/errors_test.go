package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("create booking: %w", Validation("destination", "is required"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "create booking: destination: is required", err.Error())
}

func TestTransientIOUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := TransientIO("save booking", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrTransientIO)
	assert.Equal(t, "save booking: connection reset", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("x", "bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("booking %s", "PT1")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(InvalidTransition("no")))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(TransientIO("op", errors.New("x"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
