package expr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_VariablePacking(t *testing.T) {
	tests := []struct {
		name     string
		v        Variable
		id       uint32
		external bool
	}{
		{"internal zero", Internal(0), 0, false},
		{"external zero", External(0), 0, true},
		{"internal small", Internal(12), 12, false},
		{"external small", External(12), 12, true},
		{"internal max", Internal(MaxVariableID), MaxVariableID, false},
		{"external max", External(MaxVariableID), MaxVariableID, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, tt.v.ID())
			require.Equal(t, tt.external, tt.v.IsExternal())
			require.Equal(t, tt.v, VariableFromRaw(tt.v.Raw()))
		})
	}

	// Same id, different class: distinct packed values.
	require.NotEqual(t, Internal(7).Raw(), External(7).Raw())
}

func Test_VariableString(t *testing.T) {
	require.Equal(t, "$0", Internal(0).String())
	require.Equal(t, "%0", External(0).String())
	require.Equal(t, "$ff", Internal(255).String())
	require.Equal(t, "%2a", External(42).String())
}
