package cmd

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so commands sharing the
// package-level tree do not leak state between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	path := filepath.Join(t.TempDir(), "in.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestOpsCommand(t *testing.T) {
	out, err := execute(t, "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "seam_carve_width")
	assert.Contains(t, out, "draw_cubic_bezier")
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var v map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v["version"])
}

func TestInfoCommand(t *testing.T) {
	in := writePNG(t, 9, 4)
	out, err := execute(t, "info", in)
	require.NoError(t, err)
	assert.Contains(t, out, `"width": 9`)
	assert.Contains(t, out, `"format": "png"`)
}

func TestApplyCommand(t *testing.T) {
	in := writePNG(t, 10, 6)
	dst := filepath.Join(t.TempDir(), "out.bmp")

	_, err := execute(t, "apply", "crop", "--in", in, "--out", dst, "--params", `{"x":2,"y":1,"width":4,"height":3}`, "--format", "bmp")
	require.NoError(t, err)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "BM"))
}

func TestApplyCommand_UnknownOperation(t *testing.T) {
	in := writePNG(t, 2, 2)
	_, err := execute(t, "apply", "posterize", "--in", in, "--out", filepath.Join(t.TempDir(), "x.png"))
	assert.ErrorContains(t, err, "unknown operation")
}

func TestRoot_InvalidLogLevel(t *testing.T) {
	_, err := execute(t, "ops", "--log-level", "loud")
	assert.ErrorContains(t, err, "log.level")
}
