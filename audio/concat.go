// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// concat plays a list of sources back to back. All sources must share
// sample rate and channel count; normalize them first when they do
// not (see NewResampler and NewMonoMixer).
type concat struct {
	sources []Source
	current int
}

// Concat returns a Source that streams each source in order,
// switching to the next as one reaches EOF.
func Concat(sources ...Source) (Source, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}
	rate, channels := sources[0].SampleRate(), sources[0].Channels()
	for _, s := range sources[1:] {
		if s.SampleRate() != rate || s.Channels() != channels {
			return nil, ErrFormatMismatch
		}
	}
	return &concat{sources: sources}, nil
}

func (c *concat) SampleRate() int { return c.sources[0].SampleRate() }
func (c *concat) Channels() int   { return c.sources[0].Channels() }

func (c *concat) Close() error {
	var first error
	for _, s := range c.sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *concat) ReadSamples(dst []float32) (int, error) {
	for c.current < len(c.sources) {
		n, err := c.sources[c.current].ReadSamples(dst)
		if err == io.EOF {
			c.current++
			if n > 0 {
				if c.current == len(c.sources) {
					return n, io.EOF
				}
				return n, nil
			}
			continue
		}
		return n, err
	}
	return 0, io.EOF
}
