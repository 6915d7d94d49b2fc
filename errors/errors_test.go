package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapfPreservesSentinel(t *testing.T) {
	err := Wrapf(ErrNotFound, "movie %q", "Cars")
	assert.True(t, Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "Cars")
}

func TestSentinelChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found direct", ErrNotFound, IsNotFound, true},
		{"not found wrapped", Wrap(ErrNotFound, "item"), IsNotFound, true},
		{"not found mismatch", ErrUnsupported, IsNotFound, false},
		{"unknown variant", Wrap(ErrUnknownVariant, "Widget.7"), IsUnknownVariant, true},
		{"unsupported", NewUnsupportedf("reload on history entry"), IsUnsupported, true},
		{"bad request", NewBadRequestf("missing key"), IsBadRequest, true},
		{"nil error", nil, IsNotFound, false},
		{"plain error", fmt.Errorf("plain"), IsBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.err))
		})
	}
}

func TestNewNotFoundfMessage(t *testing.T) {
	err := NewNotFoundf("unable to find elem: cls=%s", "Movie")
	require.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "cls=Movie")
}
