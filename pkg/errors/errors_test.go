package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/invkit/recount/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestSchemaError(t *testing.T) {
	t.Run("enumerates missing columns", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("recount", []string{"Whs", "SystemQty"})
		assert.Equal(t, "recount is missing required columns: Whs, SystemQty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrSchema))
	})

	t.Run("helper", func(t *testing.T) {
		err := pkgerrors.NewSchemaError("locations", []string{"Location"})
		assert.True(t, pkgerrors.IsSchema(err))
		assert.False(t, pkgerrors.IsSchema(errors.New("other")))
	})

	t.Run("wrapped", func(t *testing.T) {
		base := pkgerrors.NewSchemaError("review_lines", []string{"CountQty"})
		wrapped := errors.Join(errors.New("load failed"), base)
		assert.True(t, pkgerrors.IsSchema(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "mode",
			Message: "must be TRANSFER or ADJUST",
		}
		assert.Equal(t, "validation failed for field mode: must be TRANSFER or ADJUST", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "no records"}
		assert.Equal(t, "validation failed: no records", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewValidationError("severity", 120, "exceeds maximum")
		assert.Equal(t, 120, err.Value)
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestParseError(t *testing.T) {
	err := pkgerrors.NewParseError("xlsx", "recount.xlsx", "bad numeric cell", nil)
	assert.Equal(t, "parse error in xlsx file recount.xlsx: bad numeric cell", err.Error())

	withRow := &pkgerrors.ParseError{Format: "csv", File: "lines.csv", Row: 7, Message: "short record"}
	assert.Equal(t, "parse error in csv file lines.csv at row 7: short record", withRow.Error())
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/out.xlsx", base)
	assert.Equal(t, "IO error during write of /tmp/out.xlsx: permission denied", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestStoreError(t *testing.T) {
	base := errors.New("database locked")
	err := pkgerrors.NewStoreError("upsert", base)
	assert.Equal(t, "notes store error during upsert: database locked", err.Error())
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil errors pass through", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
		assert.Nil(t, pkgerrors.WrapParse("csv", "x", nil))
		assert.Nil(t, pkgerrors.WrapValidation("field", nil))
		assert.Nil(t, pkgerrors.WrapStore("open", nil))
	})

	t.Run("wrap validation", func(t *testing.T) {
		err := pkgerrors.WrapValidation("buffer_location", errors.New("blank"))
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrap parse keeps cause", func(t *testing.T) {
		cause := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("xlsx", "broken.xlsx", cause)
		assert.True(t, errors.Is(err, cause))
	})
}
