package predictor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendLowRisk(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Recommend(0.1, 0.2, 0.3))
}

func TestRecommendModerateRisk(t *testing.T) {
	t.Parallel()

	recs := Recommend(0.5, 0.5, 0.5)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Equal(t, 2, r.Priority)
	}

	titles := []string{recs[0].Title, recs[1].Title, recs[2].Title}
	assert.Contains(t, titles, "Use Reflective Materials")
	assert.Contains(t, titles, "Improve Drainage Systems")
	assert.Contains(t, titles, "Improve Public Transit")
}

func TestRecommendHighRisk(t *testing.T) {
	t.Parallel()

	recs := Recommend(0.9, 0.9, 0.9)
	require.Len(t, recs, 6)
	for _, r := range recs {
		assert.Equal(t, 1, r.Priority)
	}
}

func TestRecommendMixedSortedByPriority(t *testing.T) {
	t.Parallel()

	// Heat high, water moderate, air low. Descending priority puts the
	// water moderate action ahead of the two priority-1 heat actions.
	recs := Recommend(0.8, 0.5, 0.1)
	require.Len(t, recs, 3)

	assert.Equal(t, "Improve Drainage Systems", recs[0].Title)
	assert.Equal(t, "Implement Green Roofs", recs[1].Title)
	assert.Equal(t, "Increase Tree Canopy", recs[2].Title)

	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i].Priority, recs[i-1].Priority)
	}
}

func TestRecommendThresholdBoundary(t *testing.T) {
	t.Parallel()

	// Exactly at a threshold does not trigger the band above it.
	assert.Empty(t, Recommend(0.4, 0.4, 0.4))

	recs := Recommend(0.7, 0.0, 0.0)
	require.Len(t, recs, 1)
	assert.Equal(t, "Use Reflective Materials", recs[0].Title)
}
