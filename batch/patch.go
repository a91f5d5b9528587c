// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/echotools/bnkpatch/bnk"
)

// Shrinker squeezes the waveform at srcWav into at most capacity
// bytes. *shrink.Strategy satisfies it.
type Shrinker interface {
	Fit(srcWav string, id uint32, capacity int) ([]byte, error)
}

// WemDecoder turns a compressed blob back into a waveform.
// *wem.Decoder satisfies it.
type WemDecoder interface {
	Decode(src, dst string) error
}

// PatchOptions configures a patch run.
type PatchOptions struct {
	// Banks are the bank files to patch.
	Banks []string
	// ReplacementDir holds candidate blobs named {id}.wem. A source
	// waveform {id}.wav next to a candidate feeds the shrink path.
	ReplacementDir string
	// OutputDir receives patched banks under their original base
	// names. Banks with no successful injection are not written.
	OutputDir string
	// Shrinker, when set, retries oversized candidates at reduced
	// fidelity.
	Shrinker Shrinker
	// Decoder, when set, recovers a source waveform from an oversized
	// candidate that has no {id}.wav next to it.
	Decoder WemDecoder
	// Workers bounds bank-level parallelism. Zero means one bank at a
	// time.
	Workers int
}

// candidate is one replacement blob from the replacement directory.
type candidate struct {
	id   uint32
	path string
}

// Patch applies the replacement set to every bank. The returned slice
// is ordered like opts.Banks; per-bank failures land in BankResult.Err
// and never abort the run. The only run-level error is context
// cancellation.
func Patch(ctx context.Context, opts PatchOptions) ([]BankResult, error) {
	candidates, err := loadCandidates(opts.ReplacementDir)
	if err != nil {
		return nil, err
	}
	logrus.Infof("patching %d banks with %d replacement candidates",
		len(opts.Banks), len(candidates))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	results := make([]BankResult, len(opts.Banks))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.Workers, 1))
	for i, bankPath := range opts.Banks {
		i, bankPath := i, bankPath
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = patchBank(bankPath, candidates, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// loadCandidates scans dir for files named {id}.wem. Files whose base
// name is not an unsigned integer are ignored.
func loadCandidates(dir string) ([]candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading replacement directory")
	}

	var out []candidate
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wem") {
			continue
		}
		base := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		id, err := strconv.ParseUint(base, 10, 32)
		if err != nil {
			logrus.Debugf("ignoring %s: name is not an asset id", e.Name())
			continue
		}
		out = append(out, candidate{id: uint32(id), path: filepath.Join(dir, e.Name())})
	}
	return out, nil
}

func patchBank(bankPath string, candidates []candidate, opts PatchOptions) BankResult {
	res := BankResult{Bank: bankPath}

	if !bnk.Sniff(bankPath) {
		res.Err = errors.Errorf("%s is not a soundbank", bankPath)
		return res
	}

	container, err := bnk.Load(bankPath)
	if err != nil {
		res.Err = err
		return res
	}
	originalLen := container.Len()

	index, err := container.Index()
	if err != nil {
		res.Err = errors.Wrapf(err, "indexing %s", filepath.Base(bankPath))
		return res
	}

	for _, cand := range candidates {
		entry, ok := index.Lookup(cand.id)
		if !ok {
			// The candidate simply belongs to another bank.
			continue
		}
		res.Assets = append(res.Assets, patchAsset(container, index, entry, cand, opts))
	}

	if res.Patched() == 0 {
		logrus.Infof("%s: nothing to patch", filepath.Base(bankPath))
		return res
	}

	if container.Len() != originalLen {
		res.Err = errors.Errorf("%s: container length changed during patching", bankPath)
		return res
	}

	out := filepath.Join(opts.OutputDir, filepath.Base(bankPath))
	if err := container.WriteFile(out); err != nil {
		res.Err = err
		return res
	}
	res.Written = true
	res.Output = out
	logrus.Infof("%s: %d/%d assets patched -> %s",
		filepath.Base(bankPath), res.Patched(), len(res.Assets), out)
	return res
}

func patchAsset(container *bnk.Container, index *bnk.Index, entry bnk.Entry, cand candidate, opts PatchOptions) AssetResult {
	blob, err := os.ReadFile(cand.path)
	if err != nil {
		return AssetResult{ID: cand.id, Status: StatusFailed, Err: err}
	}

	used, err := container.Inject(index, cand.id, blob)
	if err == nil {
		logrus.Debugf("asset %d: patched (%d/%d bytes)", cand.id, used, entry.Capacity)
		return AssetResult{ID: cand.id, Status: StatusPatched, UsedSize: used}
	}

	var tooSmall *bnk.SlotTooSmallError
	if !errors.As(err, &tooSmall) {
		return AssetResult{ID: cand.id, Status: StatusFailed, Err: err}
	}

	if opts.Shrinker == nil {
		return AssetResult{ID: cand.id, Status: StatusTooBig, Err: tooSmall}
	}

	logrus.Infof("asset %d: %d bytes over capacity, shrinking", cand.id, tooSmall.Overflow())
	shrunk, err := shrinkCandidate(cand, entry.Capacity, opts)
	if err != nil {
		return AssetResult{ID: cand.id, Status: StatusTooBig, Err: err}
	}

	used, err = container.Inject(index, cand.id, shrunk)
	if err != nil {
		return AssetResult{ID: cand.id, Status: StatusFailed, Err: err}
	}
	return AssetResult{ID: cand.id, Status: StatusShrunk, UsedSize: used}
}

// shrinkCandidate finds a source waveform for the candidate and runs
// the shrink search against the slot's capacity. The preferred source
// is {id}.wav next to the candidate; without one, the candidate blob
// itself is decoded into a scratch waveform.
func shrinkCandidate(cand candidate, capacity int, opts PatchOptions) ([]byte, error) {
	srcWav := strings.TrimSuffix(cand.path, filepath.Ext(cand.path)) + ".wav"
	if _, err := os.Stat(srcWav); err != nil {
		if opts.Decoder == nil {
			return nil, errors.Errorf("no source waveform for asset %d and no decoder configured", cand.id)
		}

		dir, err := os.MkdirTemp("", "bnkpatch-decode-")
		if err != nil {
			return nil, errors.Wrap(err, "decode scratch dir")
		}
		defer os.RemoveAll(dir)

		srcWav = filepath.Join(dir, filepath.Base(cand.path)+".wav")
		if err := opts.Decoder.Decode(cand.path, srcWav); err != nil {
			return nil, errors.Wrapf(err, "decoding candidate for asset %d", cand.id)
		}
		return opts.Shrinker.Fit(srcWav, cand.id, capacity)
	}

	return opts.Shrinker.Fit(srcWav, cand.id, capacity)
}
