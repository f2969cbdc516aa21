package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/linkage/internal/config"
	"github.com/san-kum/linkage/internal/dynamo"
	"github.com/san-kum/linkage/internal/experiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParam(t *testing.T) {
	name, values, err := parseParam("iterations=1,3, 5")
	require.NoError(t, err)
	assert.Equal(t, "iterations", name)
	assert.Equal(t, []float64{1, 3, 5}, values)

	name, values, err = parseParam("bounce=0:1:3")
	require.NoError(t, err)
	assert.Equal(t, "bounce", name)
	assert.Equal(t, []float64{0, 0.5, 1}, values)

	for _, bad := range []string{"gravity", "=1,2", "gravity=", "gravity=a,b", "gravity=0:x:3"} {
		_, _, err := parseParam(bad)
		assert.Error(t, err, bad)
	}

	_, _, err = parseParam("bounce=0:1:0")
	assert.ErrorIs(t, err, dynamo.ErrParameterBounds)
}

func TestParseAxis(t *testing.T) {
	ax, err := parseAxis("Y")
	require.NoError(t, err)
	assert.Equal(t, dynamo.AxisY, ax)

	_, err = parseAxis("z")
	assert.Error(t, err)
}

func TestWriteSVG(t *testing.T) {
	cfg := config.DefaultConfig()
	st, err := experiment.BuildState(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "frame.svg")
	require.NoError(t, writeSVG(path, cfg, st))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 7, strings.Count(out, "<line"), "hidden brace is not drawn")
}
