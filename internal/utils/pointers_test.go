package utils_test

import (
	"testing"

	"github.com/jrsteele09/clinic-admin-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestValueOr(t *testing.T) {
	require.Equal(t, "set", utils.ValueOr(utils.Ptr("set"), "fallback"))
	require.Equal(t, "fallback", utils.ValueOr[string](nil, "fallback"))
	require.Equal(t, 0, utils.ValueOr(utils.Ptr(0), 5))
}
