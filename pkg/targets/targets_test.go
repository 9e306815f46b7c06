package targets_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cgmportal/pkg/targets"
)

func TestDefault(t *testing.T) {
	table := targets.Default()
	assert.Equal(t,
		[]targets.Metric{targets.AvgGlucose, targets.CV, targets.TIR, targets.Fasting},
		table.Metrics(),
	)

	avg, err := table.Lookup(targets.AvgGlucose)
	require.NoError(t, err)
	assert.Equal(t, "mg/dL", avg.Unit)
	assert.Equal(t, targets.Range{Low: 70, High: 117}, avg.Excellent)
	assert.Equal(t, targets.Range{Low: 70, High: 140}, avg.Good)
	assert.Equal(t, targets.Range{Low: 70, High: 154}, avg.Fair)

	tir, err := table.Lookup(targets.TIR)
	require.NoError(t, err)
	assert.Equal(t, "%", tir.Unit)
}

func TestClassify(t *testing.T) {
	table := targets.Default()

	tests := []struct {
		metric targets.Metric
		value  float64
		want   targets.Tier
	}{
		{targets.AvgGlucose, 100, targets.Excellent},
		{targets.AvgGlucose, 117, targets.Excellent},
		{targets.AvgGlucose, 117.5, targets.Good},
		{targets.AvgGlucose, 154, targets.Fair},
		{targets.AvgGlucose, 180, targets.Poor},
		{targets.AvgGlucose, 60, targets.Poor},
		{targets.CV, 0, targets.Excellent},
		{targets.CV, 30, targets.Good},
		{targets.CV, 36, targets.Fair},
		{targets.CV, 40, targets.Poor},
		{targets.TIR, 95, targets.Excellent},
		{targets.TIR, 85, targets.Good},
		{targets.TIR, 70, targets.Fair},
		{targets.TIR, 69.9, targets.Poor},
		{targets.Fasting, 90, targets.Excellent},
		{targets.Fasting, 99, targets.Good},
		{targets.Fasting, 125, targets.Fair},
		{targets.Fasting, 126, targets.Poor},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric)+"/"+string(tt.want), func(t *testing.T) {
			got, err := table.Classify(tt.metric, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown metric", func(t *testing.T) {
		_, err := table.Classify("gmi", 6.5)
		assert.ErrorIs(t, err, targets.ErrUnknownMetric)
	})
}

func TestLoad(t *testing.T) {
	t.Run("keeps document order", func(t *testing.T) {
		table, err := targets.Load(strings.NewReader(`
tir:
  unit: "%"
  excellent: [85, 100]
  good: [75, 100]
  fair: [65, 100]
avgGlucose:
  unit: mg/dL
  excellent: [70, 110]
  good: [70, 130]
  fair: [70, 150]
`))
		require.NoError(t, err)
		assert.Equal(t, []targets.Metric{targets.TIR, targets.AvgGlucose}, table.Metrics())

		tier, err := table.Classify(targets.TIR, 80)
		require.NoError(t, err)
		assert.Equal(t, targets.Good, tier)
	})

	tests := []struct {
		name string
		doc  string
	}{
		{"empty", ""},
		{"not a mapping", "- cv\n- tir\n"},
		{"missing band", "cv:\n  excellent: [0, 27]\n  good: [0, 33]\n"},
		{"three values", "cv:\n  excellent: [0, 27, 1]\n  good: [0, 33]\n  fair: [0, 36]\n"},
		{"inverted", "cv:\n  excellent: [27, 0]\n  good: [0, 33]\n  fair: [0, 36]\n"},
		{"not numbers", "cv:\n  excellent: [low, high]\n  good: [0, 33]\n  fair: [0, 36]\n"},
		{"duplicate", "cv:\n  excellent: [0, 1]\n  good: [0, 2]\n  fair: [0, 3]\ncv:\n  excellent: [0, 1]\n  good: [0, 2]\n  fair: [0, 3]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := targets.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, targets.ErrInvalidTable)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		table, err := targets.LoadFile("")
		require.NoError(t, err)
		assert.Same(t, targets.Default(), table)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := targets.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, targets.ErrInvalidTable)
	})

	t.Run("round trip through WriteYAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, targets.Default().WriteYAML(&buf))

		path := filepath.Join(t.TempDir(), "targets.yaml")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		table, err := targets.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, targets.Default().Targets(), table.Targets())
	})
}

func TestTable_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(targets.Default())
	require.NoError(t, err)

	var decoded map[string]struct {
		Label     string     `json:"label"`
		Unit      string     `json:"unit"`
		Excellent [2]float64 `json:"excellent"`
		Good      [2]float64 `json:"good"`
		Fair      [2]float64 `json:"fair"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 4)
	assert.Equal(t, [2]float64{0, 27}, decoded["cv"].Excellent)
	assert.Equal(t, "%", decoded["cv"].Unit)
	assert.Equal(t, "Fasting glucose", decoded["fasting"].Label)

	assert.True(t, strings.HasPrefix(string(data), `{"avgGlucose":`), "table order is preserved")
}

func TestNewTable(t *testing.T) {
	_, err := targets.NewTable(targets.Target{})
	assert.ErrorIs(t, err, targets.ErrInvalidTable)

	table, err := targets.NewTable(targets.Target{
		Metric:    "glucoseManagementIndicator",
		Excellent: targets.Range{Low: 0, High: 6},
		Good:      targets.Range{Low: 0, High: 7},
		Fair:      targets.Range{Low: 0, High: 8},
	})
	require.NoError(t, err)

	target, err := table.Lookup("glucoseManagementIndicator")
	require.NoError(t, err)
	assert.Equal(t, "Glucose Management Indicator", target.DisplayName())
	assert.Equal(t, targets.Poor, target.Classify(9))

	_, ok := target.Band(targets.Poor)
	assert.False(t, ok)
	assert.Equal(t, "0–6", target.Excellent.String())
}
