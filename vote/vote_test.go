// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	require.Equal(t, uint8(0), None.Encode())
	require.Equal(t, uint8(1), Yes.Encode())
	require.Equal(t, uint8(2), No.Encode())
}

func TestOpposite(t *testing.T) {
	require.Equal(t, No, Yes.Opposite())
	require.Equal(t, Yes, No.Opposite())
	require.Equal(t, None, None.Opposite())
}

func TestString(t *testing.T) {
	require.Equal(t, "Yes", Yes.String())
	require.Equal(t, "No", No.String())
	require.Equal(t, "None", None.String())
	require.Equal(t, "Invalid", Vote(99).String())
}
