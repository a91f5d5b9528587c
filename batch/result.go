// SPDX-License-Identifier: EPL-2.0

package batch

// Status classifies the outcome of one replacement candidate.
type Status int

const (
	// StatusPatched means the replacement fit its slot as-is.
	StatusPatched Status = iota
	// StatusShrunk means the replacement only fit after re-encoding.
	StatusShrunk
	// StatusTooBig means the replacement overflowed its slot and no
	// shrink path was available or successful.
	StatusTooBig
	// StatusFailed covers every other per-asset error.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusShrunk:
		return "shrunk"
	case StatusTooBig:
		return "too-big"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// AssetResult is the outcome of one candidate against one bank.
type AssetResult struct {
	ID       uint32
	Status   Status
	UsedSize int
	Err      error
}

// BankResult is the outcome of one bank in a patch run. Written is
// true only when at least one injection succeeded and the bank was
// saved to the output directory; an untouched bank produces no output
// file.
type BankResult struct {
	Bank    string
	Assets  []AssetResult
	Written bool
	Output  string
	Err     error
}

// Patched counts the successful injections, shrunk ones included.
func (r BankResult) Patched() int {
	n := 0
	for _, a := range r.Assets {
		if a.Status == StatusPatched || a.Status == StatusShrunk {
			n++
		}
	}
	return n
}

// ExtractResult is the outcome of one bank in an extract run.
type ExtractResult struct {
	Bank      string
	OutputDir string
	Written   int
	Decoded   int
	AssetErrs []error
	Err       error
}
