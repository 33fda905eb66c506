package runtime

import (
	"testing"

	"github.com/dennissergeev/exo-lightning-msci-project/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeProvenance_Collision(t *testing.T) {
	_, err := mergeProvenance([]provenanceSource{
		{"run", map[string]string{"run_label": "default"}},
		{"physical_constants", map[string]string{"gravity": "9.81", "run_label": "x"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigValidation)
	assert.ErrorIs(t, err, domain.ErrProvenanceCollision)
	assert.Contains(t, err.Error(), "run_label (run, physical_constants)")
}

func TestMergeProvenance_Disjoint(t *testing.T) {
	merged, err := mergeProvenance([]provenanceSource{
		{"a", map[string]string{"x": "1"}},
		{"b", map[string]string{"y": "2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "1", "y": "2"}, merged)
}
