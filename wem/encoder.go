// SPDX-License-Identifier: EPL-2.0

package wem

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Quality selects the conversion profile passed to the encoder tool.
type Quality string

const (
	QualityHigh Quality = "Vorbis Quality High"
	QualityLow  Quality = "Vorbis Quality Low"
)

// Encoder wraps the WAV-to-WEM conversion tool. Two tool shapes are
// supported:
//
//   - a converter script (.cmd/.bat wrapping the Wwise console),
//     which takes only an input file and always writes its output
//     next to that input with a .wem extension;
//   - a plain binary invoked as "tool -encode <in> <out>".
//
// In the script case the known drop location is renamed to the
// caller's destination after the run; either way the caller names
// exactly one output path and gets the result there or an error.
type Encoder struct {
	ToolPath string
	Quality  Quality

	Stdout io.Writer
	Stderr io.Writer
}

// NewEncoder returns an Encoder for the tool at toolPath.
func NewEncoder(toolPath string, quality Quality) *Encoder {
	return &Encoder{
		ToolPath: toolPath,
		Quality:  quality,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Transcode compresses the waveform at src into a WEM blob at dst.
func (e *Encoder) Transcode(src, dst string) error {
	name, args, produced := e.command(src, dst)

	cmd := exec.Command(name, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running encoder %s", filepath.Base(e.ToolPath))
	}

	if produced != dst {
		if err := os.Rename(produced, dst); err != nil {
			return errors.Wrap(err, "collecting encoder output")
		}
	}
	if _, err := os.Stat(dst); err != nil {
		return errors.Wrap(err, "encoder produced no output")
	}
	return nil
}

// command builds the invocation for src/dst and names the path the
// tool will actually write to.
func (e *Encoder) command(src, dst string) (name string, args []string, produced string) {
	if isScript(e.ToolPath) {
		args = []string{"/c", e.ToolPath}
		if e.Quality != "" {
			args = append(args, "--conversion:"+string(e.Quality))
		}
		args = append(args, src)
		produced = strings.TrimSuffix(src, filepath.Ext(src)) + ".wem"
		return "cmd.exe", args, produced
	}
	return e.ToolPath, []string{"-encode", src, dst}, dst
}

func isScript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cmd", ".bat":
		return true
	}
	return false
}
