package yamlloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FullDocument(t *testing.T) {
	doc := `
models:
  - id: chamber
    type: thermal_mass
    params:
      thermal_mass: 10.5
      heat_transfer_coeff: 2
      initial_temp: 20.0
      temp_signal: chamber/temp
      power_signal: chamber/power
      ambient_signal: chamber/ambient
edges:
  - source: a
    target: b
    transform:
      type: linear
      params:
        scale: 2.0
        offset: 1.0
rules:
  - id: r1
    condition: "b >= 1.0"
    on_error: log_and_continue
    actions:
      - device: d
        function: f
        args:
          code: 1
          reason: overheat
          retry: true
`
	spec, err := Load([]byte(doc))
	require.NoError(t, err)

	require.Len(t, spec.Models, 1)
	massVal, ok := spec.Models[0].Params["thermal_mass"].AsFloat64()
	require.True(t, ok)
	assert.Equal(t, 10.5, massVal)
	coeff, ok := spec.Models[0].Params["heat_transfer_coeff"].AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(2), coeff)

	require.Len(t, spec.Edges, 1)
	assert.Equal(t, "linear", spec.Edges[0].Transform.Type)

	require.Len(t, spec.Rules, 1)
	code, ok := spec.Rules[0].Actions[0].Args["code"].AsInt64()
	require.True(t, ok)
	assert.Equal(t, int64(1), code)
	retry, ok := spec.Rules[0].Actions[0].Args["retry"].AsBool()
	require.True(t, ok)
	assert.True(t, retry)
}

func TestLoad_MalformedYAMLReportsRootPath(t *testing.T) {
	_, err := Load([]byte("models: [not: closed"))
	require.Error(t, err)
	var target *ParseError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "/", target.Path)
}

func TestLoad_UnsupportedParamValueReportsPointerPath(t *testing.T) {
	doc := `
edges:
  - source: a
    target: b
    transform:
      type: linear
      params:
        scale: [1, 2]
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	var target *ParseError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "/edges/0/transform/params/scale", target.Path)
}

func TestLoad_EmptyDocument(t *testing.T) {
	spec, err := Load([]byte(``))
	require.NoError(t, err)
	assert.Empty(t, spec.Models)
	assert.Empty(t, spec.Edges)
	assert.Empty(t, spec.Rules)
}
