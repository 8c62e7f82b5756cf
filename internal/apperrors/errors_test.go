package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := Validation("budget must be >= 0, got %v", -5)
	assert.Equal(t, "ValidationError: budget must be >= 0, got -5", err.Error())

	cause := errors.New("connection reset")
	wrapped := TransactionFailure(cause, "cascade delete failed")
	assert.Equal(t, "TransactionFailure: cascade delete failed: connection reset", wrapped.Error())
	assert.Equal(t, cause, errors.Unwrap(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("brand %q not found", "acme")))
	assert.Equal(t, KindHierarchyViolation, KindOf(HierarchyViolation("parent is not an umbrella")))
	assert.Equal(t, KindDeletionBlocked, KindOf(DeletionBlocked("2 active campaigns")))

	// Kind survives fmt wrapping.
	wrapped := fmt.Errorf("handling request: %w", Validation("bad input"))
	assert.Equal(t, KindValidation, KindOf(wrapped))

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestIsKind(t *testing.T) {
	err := DeletionBlocked("brand has active campaigns")
	assert.True(t, IsKind(err, KindDeletionBlocked))
	assert.False(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(errors.New("plain"), KindDeletionBlocked))
}

func TestWrapKeepsCauseChain(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := Wrap(KindValidation, cause, "slug already taken")
	require.ErrorIs(t, err, cause)
	assert.Equal(t, KindValidation, KindOf(err))
}
