package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageNext_LinearChain(t *testing.T) {
	next, ok := StageImplementation.Next()
	require.True(t, ok)
	assert.Equal(t, StageValidation, next)

	next, ok = StageValidation.Next()
	require.True(t, ok)
	assert.Equal(t, StagePreScale, next)

	next, ok = StagePreScale.Next()
	require.True(t, ok)
	assert.Equal(t, StageScale, next)
}

func TestStageNext_ScaleIsTerminal(t *testing.T) {
	for i := 0; i < 5; i++ {
		_, ok := StageScale.Next()
		assert.False(t, ok)
	}
}

func TestStageNext_ThreeAdvancesReachScale(t *testing.T) {
	s := StageImplementation
	for i := 0; i < 3; i++ {
		next, ok := s.Next()
		require.True(t, ok, "advance %d from %s", i, s)
		s = next
	}
	assert.Equal(t, StageScale, s)
}

func TestStageNext_UnknownStage(t *testing.T) {
	_, ok := Stage("Launch").Next()
	assert.False(t, ok)
}

func TestStageIsValid(t *testing.T) {
	for _, s := range AllStages() {
		assert.True(t, s.IsValid(), "%s", s)
	}
	assert.False(t, Stage("").IsValid())
	assert.False(t, Stage("implementation").IsValid())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, FunnelLeadGen.IsValid())
	assert.False(t, FunnelType("Organic").IsValid())

	assert.True(t, StatusOpportunity.IsValid())
	assert.False(t, InsightStatus("great").IsValid())

	assert.True(t, CategoryCreative.IsValid())
	assert.False(t, SuggestionCategory("seo").IsValid())

	assert.True(t, ImpactMedium.IsValid())
	assert.False(t, Impact("huge").IsValid())

	assert.True(t, EventIncident.IsValid())
	assert.False(t, EventType("launch").IsValid())
}

func TestLatestMetric(t *testing.T) {
	var p Project
	_, ok := p.LatestMetric()
	assert.False(t, ok)

	p.Metrics = []MetricData{
		{Date: "01/05/2024", ROI: 2.8},
		{Date: "01/06/2024", ROI: 3.2},
	}
	m, ok := p.LatestMetric()
	require.True(t, ok)
	assert.Equal(t, "01/06/2024", m.Date)
	assert.Equal(t, 3.2, m.ROI)
}
