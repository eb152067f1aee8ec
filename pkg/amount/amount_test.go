package amount_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heirvault/heirvault-daemon/pkg/amount"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in        string
		precision uint
		expected  uint64
	}{
		{"10", 8, 1_000_000_000},
		{"10.5", 8, 1_050_000_000},
		{"0.00000001", 8, 1},
		{"42", 0, 42},
		{"0", 8, 0},
	}

	for _, tt := range tests {
		got, err := amount.Parse(tt.in, tt.precision)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.expected, got, tt.in)
	}
}

func TestFailingParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        string
		precision uint
	}{
		{"not_a_number", "ten", 8},
		{"negative", "-1", 8},
		{"too_many_decimals", "0.123456789", 8},
		{"overflow", "999999999999999999999", 8},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := amount.Parse(tt.in, tt.precision)
			require.Error(t, err)
		})
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	require.Equal(t, "10.5", amount.Format(1_050_000_000, 8))
	require.Equal(t, "42", amount.Format(42, 0))
	require.Equal(t, "0.00000001", amount.Format(1, 8))
}
