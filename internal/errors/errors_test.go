package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := DataFormat("truncated row")
	wrapped := Wrap(base, "load correlator file")

	assert.Equal(t, CodeDataFormat, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "load correlator file")
	assert.True(t, stderrors.Is(wrapped, base) || stderrors.As(wrapped, new(*AppError)))
}

func TestWrap_ForeignErrorGetsInternalCode(t *testing.T) {
	wrapped := Wrapf(stderrors.New("disk on fire"), "save run %s", "abc")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "save run abc")
	assert.Contains(t, wrapped.Error(), "disk on fire")
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "context"))
	assert.NoError(t, Wrapf(nil, "context %d", 1))
}

func TestGetCode_Unknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
