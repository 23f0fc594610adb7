package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPedigreeDQIBounds(t *testing.T) {
	best := PedigreeMatrix{1, 1, 1, 1, 1}
	worst := PedigreeMatrix{5, 5, 5, 5, 5}

	assert.Equal(t, 100, PedigreeDQI(best))
	assert.Equal(t, 0, PedigreeDQI(worst))
}

func TestPedigreeDQILinearMapping(t *testing.T) {
	// Sum 8 -> 100 - 3/20*100 = 85; sum 15 -> 50; sum 21 -> 20.
	assert.Equal(t, 85, PedigreeDQI(PedigreeMatrix{2, 2, 1, 1, 2}))
	assert.Equal(t, 50, PedigreeDQI(PedigreeMatrix{3, 3, 3, 3, 3}))
	assert.Equal(t, 20, PedigreeDQI(PedigreeMatrix{4, 4, 5, 4, 4}))
}

func TestPedigreeDQIMonotonicDecreasing(t *testing.T) {
	prev := PedigreeDQI(PedigreeMatrix{1, 1, 1, 1, 1})
	for score := 2; score <= 5; score++ {
		cur := PedigreeDQI(PedigreeMatrix{score, 1, 1, 1, 1})
		assert.Less(t, cur, prev, "DQI must decrease as reliability worsens to %d", score)
		prev = cur
	}
}

func TestPedigreeVariance(t *testing.T) {
	assert.Equal(t, 0.0, PedigreeVariance(PedigreeMatrix{1, 1, 1, 1, 1}))

	// Worst-case sum of all five dimension tables at score 5.
	worst := PedigreeVariance(PedigreeMatrix{5, 5, 5, 5, 5})
	assert.InDelta(t, 0.04+0.008+0.04+0.002+0.12, worst, 1e-12)

	// Reliability dominates completeness at the same score.
	rel := PedigreeVariance(PedigreeMatrix{5, 1, 1, 1, 1})
	comp := PedigreeVariance(PedigreeMatrix{1, 5, 1, 1, 1})
	assert.Greater(t, rel, comp)
}

func TestPedigreeClamped(t *testing.T) {
	m := PedigreeMatrix{Reliability: 0, Completeness: 7, Temporal: 3, Geographical: -2, Technological: 5}
	c := m.Clamped()

	assert.Equal(t, PedigreeMatrix{1, 5, 3, 1, 5}, c)
}

func TestGradeDefaultScore(t *testing.T) {
	assert.Equal(t, 2, gradeDefaultScore(GradeHigh))
	assert.Equal(t, 3, gradeDefaultScore(GradeMedium))
	assert.Equal(t, 4, gradeDefaultScore(GradeLow))
	assert.Equal(t, 3, gradeDefaultScore(QualityGrade("")))
}
