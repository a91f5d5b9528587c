// SPDX-License-Identifier: EPL-2.0

package wem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncoder_CommandForBinaryTool(t *testing.T) {
	t.Parallel()

	e := NewEncoder("/opt/tools/wwise-encoder", QualityHigh)
	name, args, produced := e.command("/tmp/in.wav", "/tmp/out.wem")

	assert.Equal(t, "/opt/tools/wwise-encoder", name)
	assert.Equal(t, []string{"-encode", "/tmp/in.wav", "/tmp/out.wem"}, args)
	assert.Equal(t, "/tmp/out.wem", produced)
}

func TestEncoder_CommandForScriptTool(t *testing.T) {
	t.Parallel()

	e := NewEncoder(`C:\Tools\Sound2Wem.cmd`, QualityLow)
	name, args, produced := e.command("/work/123.wav", "/out/123.wem")

	assert.Equal(t, "cmd.exe", name)
	assert.Equal(t, []string{
		"/c", `C:\Tools\Sound2Wem.cmd`,
		"--conversion:Vorbis Quality Low",
		"/work/123.wav",
	}, args)
	// The script drops its output next to the input; Transcode renames
	// it to the caller's destination afterwards.
	assert.Equal(t, "/work/123.wem", produced)
}

func TestEncoder_ScriptWithoutQualityOmitsFlag(t *testing.T) {
	t.Parallel()

	e := NewEncoder("conv.bat", "")
	_, args, _ := e.command("a.wav", "b.wem")
	assert.Equal(t, []string{"/c", "conv.bat", "a.wav"}, args)
}

func TestIsScript(t *testing.T) {
	t.Parallel()

	assert.True(t, isScript("Sound2Wem.cmd"))
	assert.True(t, isScript("CONVERT.BAT"))
	assert.False(t, isScript("vgmstream-cli.exe"))
	assert.False(t, isScript("encoder"))
}
