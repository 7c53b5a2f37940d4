package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, MetadataFor(CodeValidation).HTTPStatus)
	assert.Equal(t, http.StatusNotFound, MetadataFor(CodeNotFound).HTTPStatus)
	assert.Equal(t, http.StatusConflict, MetadataFor(CodeConflict).HTTPStatus)
	assert.Equal(t, http.StatusUnprocessableEntity, MetadataFor(CodeStateConflict).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(CodeStore).HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, MetadataFor(Code("UNKNOWN")).HTTPStatus)
}

func TestAsThroughWrapping(t *testing.T) {
	cause := errors.New("pq: duplicate key value")
	typed := Wrap(CodeConflict, cause, "product already exists").WithDetails(map[string]any{"id": "P1"})
	wrapped := fmt.Errorf("create product: %w", typed)

	got := As(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeConflict, got.Code())
	assert.Equal(t, "product already exists", got.Message())
	assert.Equal(t, map[string]any{"id": "P1"}, got.Details())
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeStore, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("product", "X")))
	assert.True(t, IsNotFound(fmt.Errorf("get: %w", NotFound("pawn", 7))))
	assert.False(t, IsNotFound(nil))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "NOT_FOUND: pawn not found: 7", NotFound("pawn", 7).Error())
	assert.Equal(t, "STORE_ERROR: insert failed: boom",
		Wrap(CodeStore, errors.New("boom"), "insert failed").Error())
}
