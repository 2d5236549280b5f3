package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:        http.StatusBadRequest,
		KindUnauthenticated:   http.StatusUnauthorized,
		KindForbidden:         http.StatusForbidden,
		KindNotFound:          http.StatusNotFound,
		KindInsufficientStock: http.StatusBadRequest,
		KindEmptyCart:         http.StatusBadRequest,
		KindServer:            http.StatusInternalServerError,
	}

	for kind, status := range cases {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, status, kind.Status())
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Run("Direct", func(t *testing.T) {
		assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	})

	t.Run("Wrapped", func(t *testing.T) {
		err := fmt.Errorf("load: %w", Forbidden("nope"))
		assert.Equal(t, KindForbidden, KindOf(err))
		assert.Equal(t, "nope", MessageOf(err))
	})

	t.Run("Unknown", func(t *testing.T) {
		err := errors.New("connection reset")
		assert.Equal(t, KindServer, KindOf(err))
		assert.Equal(t, "Server Error", MessageOf(err))
	})
}

func TestErrorIsSentinel(t *testing.T) {
	sentinel := NotFound("Product not found")
	wrapped := fmt.Errorf("repo: %w", sentinel)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.False(t, errors.Is(wrapped, NotFound("Product not found")))
}

func TestWrap(t *testing.T) {
	cause := errors.New("token is expired")
	err := Wrap(KindUnauthenticated, "Token expired. Please login again.", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Token expired. Please login again.: token is expired", err.Error())
}
