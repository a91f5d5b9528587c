// SPDX-License-Identifier: EPL-2.0

package wem

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
)

// Decoder wraps a vgmstream-style command line decoder, invoked as
// "tool -o <out.wav> <in.wem>".
type Decoder struct {
	ToolPath string

	Stdout io.Writer
	Stderr io.Writer
}

// NewDecoder returns a Decoder for the tool at toolPath.
func NewDecoder(toolPath string) *Decoder {
	return &Decoder{
		ToolPath: toolPath,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// Decode turns the WEM blob at src into a WAV waveform at dst.
func (d *Decoder) Decode(src, dst string) error {
	cmd := exec.Command(d.ToolPath, "-o", dst, src)
	cmd.Stdout = d.Stdout
	cmd.Stderr = d.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running decoder %s", filepath.Base(d.ToolPath))
	}
	if _, err := os.Stat(dst); err != nil {
		return errors.Wrap(err, "decoder produced no output")
	}
	return nil
}
