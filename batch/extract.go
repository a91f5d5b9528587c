// SPDX-License-Identifier: EPL-2.0

package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/echotools/bnkpatch/bnk"
)

// ExtractOptions configures an extract run.
type ExtractOptions struct {
	// Banks are the bank files to extract.
	Banks []string
	// OutputDir receives one subdirectory per bank, named after the
	// bank, holding its blobs as {id}.wem.
	OutputDir string
	// Decoder, when set, also writes each blob as {id}.wav next to it.
	Decoder WemDecoder
	// Workers bounds bank-level parallelism. Zero means one bank at a
	// time.
	Workers int
}

// Extract pulls every asset out of every bank. The returned slice is
// ordered like opts.Banks; invalid banks are reported in their result
// and skipped. The only run-level error is context cancellation.
func Extract(ctx context.Context, opts ExtractOptions) ([]ExtractResult, error) {
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	results := make([]ExtractResult, len(opts.Banks))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.Workers, 1))
	for i, bankPath := range opts.Banks {
		i, bankPath := i, bankPath
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = extractBank(bankPath, opts)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func extractBank(bankPath string, opts ExtractOptions) ExtractResult {
	res := ExtractResult{Bank: bankPath}

	if !bnk.Sniff(bankPath) {
		res.Err = errors.Errorf("%s is not a soundbank", bankPath)
		return res
	}

	container, err := bnk.Load(bankPath)
	if err != nil {
		res.Err = err
		return res
	}

	index, err := container.Index()
	if err != nil {
		res.Err = errors.Wrapf(err, "indexing %s", filepath.Base(bankPath))
		return res
	}

	base := strings.TrimSuffix(filepath.Base(bankPath), filepath.Ext(bankPath))
	dir := filepath.Join(opts.OutputDir, base)
	if err := os.MkdirAll(dir, 0755); err != nil {
		res.Err = errors.Wrap(err, "creating bank directory")
		return res
	}
	res.OutputDir = dir

	for _, asset := range container.Extract(index) {
		if asset.Err != nil {
			res.AssetErrs = append(res.AssetErrs, asset.Err)
			logrus.Warnf("%s: %v", filepath.Base(bankPath), asset.Err)
			continue
		}

		blobPath := filepath.Join(dir, fmt.Sprintf("%d.wem", asset.ID))
		if err := os.WriteFile(blobPath, asset.Data, 0644); err != nil {
			res.AssetErrs = append(res.AssetErrs, err)
			continue
		}
		res.Written++

		if opts.Decoder == nil {
			continue
		}
		wavPath := filepath.Join(dir, fmt.Sprintf("%d.wav", asset.ID))
		if err := opts.Decoder.Decode(blobPath, wavPath); err != nil {
			res.AssetErrs = append(res.AssetErrs, errors.Wrapf(err, "decoding asset %d", asset.ID))
			continue
		}
		res.Decoded++
	}

	logrus.Infof("%s: %d assets extracted to %s", filepath.Base(bankPath), res.Written, dir)
	return res
}
