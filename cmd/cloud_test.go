package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/movingcloud/InputParameters"
	"github.com/notargets/movingcloud/driver"
	"github.com/notargets/movingcloud/model_problems/MovingCloud"
)

// smallDeck shrinks the example deck to keep the test quick.
var smallDeck = []string{
	"parthenon/mesh/nx1=16", "parthenon/mesh/nx2=8", "parthenon/mesh/nx3=8",
	"parthenon/meshblock/nx1=8", "parthenon/meshblock/nx2=8", "parthenon/meshblock/nx3=8",
}

func writeDeck(t *testing.T) string {
	fileName := filepath.Join(t.TempDir(), "cloud.yaml")
	require.NoError(t, os.WriteFile(fileName, []byte(ExampleInput), 0644))
	return fileName
}

func TestRunCloud(t *testing.T) {
	var (
		out bytes.Buffer
	)
	mc := &ModelCloud{
		InputFile: writeDeck(t),
		Overrides: smallDeck,
		NRanks:    2,
		NThreads:  2,
	}
	pin, err := readInput(mc)
	require.NoError(t, err)
	nx1, err := pin.GetInteger("parthenon/mesh", "nx1")
	require.NoError(t, err)
	assert.Equal(t, 16, nx1)
	log, hook := test.NewNullLogger()
	diag, err := RunCloud(context.Background(), mc, pin, &out, log)
	require.NoError(t, err)
	assert.Equal(t, 16*8*8, diag.Cells)
	assert.InEpsilon(t, 100., diag.MaxDensity, 1.e-3)
	assert.InEpsilon(t, 1., diag.MinDensity, 1.e-6)
	assert.Contains(t, out.String(), "<problem/moving_cloud>")
	assert.Contains(t, out.String(), "Moving cloud problem generator")
	assert.Equal(t, "initial state", hook.LastEntry().Message)
}

func TestRunCloudErrors(t *testing.T) {
	{ // Ambient density inconsistent with the mass unit
		mc := &ModelCloud{
			InputFile: writeDeck(t),
			Overrides: append([]string{"problem/moving_cloud/rho_ambient_mh_cm3=0.15"}, smallDeck...),
		}
		pin, err := readInput(mc)
		require.NoError(t, err)
		log, _ := test.NewNullLogger()
		_, err = RunCloud(context.Background(), mc, pin, &bytes.Buffer{}, log)
		assert.True(t, errors.Is(err, MovingCloud.ErrInconsistentInput))
	}
	{ // Unknown generator
		mc := &ModelCloud{InputFile: writeDeck(t), Overrides: []string{"problem/generator=sod"}}
		pin, err := readInput(mc)
		require.NoError(t, err)
		log, _ := test.NewNullLogger()
		_, err = RunCloud(context.Background(), mc, pin, &bytes.Buffer{}, log)
		assert.True(t, errors.Is(err, driver.ErrUnknownGenerator))
	}
	{ // Malformed override and missing deck
		_, err := readInput(&ModelCloud{InputFile: writeDeck(t), Overrides: []string{"no_assignment"}})
		assert.Error(t, err)
		_, err = readInput(&ModelCloud{InputFile: filepath.Join(t.TempDir(), "missing.yaml")})
		assert.Error(t, err)
	}
}

func TestExampleInput(t *testing.T) {
	pin := InputParameters.NewParameterInput()
	require.NoError(t, pin.Parse([]byte(ExampleInput)))
	axis, err := pin.GetString(MovingCloud.Section, "motion_axis")
	require.NoError(t, err)
	assert.Equal(t, "x1", axis)
	assert.NoError(t, setLogLevel("debug"))
	assert.Error(t, setLogLevel("loud"))
	assert.NoError(t, setLogLevel("info"))
}
