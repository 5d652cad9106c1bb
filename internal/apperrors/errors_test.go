package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOfUnwrapsChain(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")
	err := fmt.Errorf("save enrollment: %w", ReferentialIntegrity("enrollments.save", cause))

	require.Equal(t, KindReferentialIntegrity, KindOf(err))
	require.True(t, IsKind(err, KindReferentialIntegrity))
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "enrollments.save")
}

func TestKindOfDefaultsToUnexpected(t *testing.T) {
	require.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	require.False(t, IsKind(nil, KindUnexpected))
	require.Nil(t, New(KindDatabase, "noop", nil))
}

func TestConfigurationMessage(t *testing.T) {
	err := Configuration("missing key %q", "PATH")
	require.True(t, IsKind(err, KindConfiguration))
	require.Equal(t, `INVALID_CONFIGURATION: missing key "PATH"`, err.Error())
}
