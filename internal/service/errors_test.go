package service_test

import (
	"errors"
	"testing"

	"minerals/backend/internal/service"

	"github.com/stretchr/testify/require"
)

func TestWrappedSentinels(t *testing.T) {
	require.True(t, errors.Is(service.ErrAlreadySubscribed, service.ErrInvalid))
	require.True(t, errors.Is(service.ErrProRequired, service.ErrForbidden))

	require.False(t, errors.Is(service.ErrAlreadySubscribed, service.ErrForbidden))
	require.False(t, errors.Is(service.ErrBillingUnavailable, service.ErrInvalid))
}
