package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innsikt/internal/model"
)

func TestNormalize_CivilDatesUseOsloMidnight(t *testing.T) {
	n := NewNormalizer(nil)

	pred, err := n.Normalize(RawFilter{Team: "flex", FromDate: "2026-03-01", ToDate: "2026-03-01"})
	require.NoError(t, err)

	require.NotNil(t, pred.From)
	require.NotNil(t, pred.To)
	// Oslo is UTC+1 in March
	assert.Equal(t, time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC), pred.From.UTC())
	assert.Equal(t, time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC), pred.To.UTC())
}

func TestNormalize_RecordNearMidnightIsIncluded(t *testing.T) {
	n := NewNormalizer(nil)
	pred, err := n.Normalize(RawFilter{Team: "flex", FromDate: "2026-06-10", ToDate: "2026-06-10"})
	require.NoError(t, err)

	// 23:30 UTC on the 9th is 01:30 on the 10th in Oslo (summer time)
	early := model.FeedbackRecord{Team: "flex", SubmittedAt: time.Date(2026, 6, 9, 23, 30, 0, 0, time.UTC)}
	// 22:30 UTC on the 10th is 00:30 on the 11th in Oslo
	late := model.FeedbackRecord{Team: "flex", SubmittedAt: time.Date(2026, 6, 10, 22, 30, 0, 0, time.UTC)}

	assert.True(t, pred.Matches(early))
	assert.False(t, pred.Matches(late))
}

func TestNormalize_TimestampFallback(t *testing.T) {
	n := NewNormalizer(nil)

	pred, err := n.Normalize(RawFilter{Team: "flex", FromDate: "2026-03-01T10:15:00Z", ToDate: "2026-03-02T08:00:00+01:00"})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 1, 10, 15, 0, 0, time.UTC), pred.From.UTC())
	assert.Equal(t, time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC), pred.To.UTC())
}

func TestNormalize_UnparseableBoundsAreDropped(t *testing.T) {
	n := NewNormalizer(nil)

	pred, err := n.Normalize(RawFilter{Team: "flex", FromDate: "i går", ToDate: "2026-13-45"})
	require.NoError(t, err)

	assert.Nil(t, pred.From)
	assert.Nil(t, pred.To)
	assert.False(t, pred.HasRange())
}

func TestNormalize_Segments(t *testing.T) {
	n := NewNormalizer(nil)

	pred, err := n.Normalize(RawFilter{
		Team:     "flex",
		Segments: []string{"rolle:saksbehandler", " :tom", "tom: ", "uten-skille", "eksperiment=b"},
	})
	require.NoError(t, err)

	assert.Equal(t, []model.SegmentFilter{
		{Key: "rolle", Value: "saksbehandler"},
		{Key: "eksperiment", Value: "b"},
	}, pred.Segments)
}

func TestNormalize_Fields(t *testing.T) {
	n := NewNormalizer(nil)

	pred, err := n.Normalize(RawFilter{
		Team: " flex ", App: "dagpenger", SurveyID: "s1", DeviceType: "Mobile", Task: " Søke ",
	})
	require.NoError(t, err)

	assert.Equal(t, "flex", pred.Team)
	assert.Equal(t, "dagpenger", pred.App)
	assert.Equal(t, "s1", pred.SurveyID)
	assert.Equal(t, model.DeviceMobile, pred.DeviceType)
	assert.Equal(t, "Søke", pred.Task)
}

func TestNormalize_ValidationErrors(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		name string
		raw  RawFilter
	}{
		{"missing team", RawFilter{}},
		{"blank team", RawFilter{Team: "   "}},
		{"unknown device", RawFilter{Team: "flex", DeviceType: "watch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestNewNormalizer_CustomLocation(t *testing.T) {
	n := NewNormalizer(time.UTC)

	pred, err := n.Normalize(RawFilter{Team: "flex", FromDate: "2026-03-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *pred.From)
}

func TestValidate_CivilDateRuleIsRegistered(t *testing.T) {
	type window struct {
		From string `validate:"civildate"`
	}

	assert.NotPanics(t, func() {
		assert.NoError(t, Validate(window{From: "2026-03-01"}))
		assert.NoError(t, Validate(window{From: "not a date"}))
	})
}
