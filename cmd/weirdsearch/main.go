//----------------------------------------------------------------------
// This file is part of the Weird Odd Engine.
// Copyright (C) 2011-present, Bernd Fix  >Y<
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	goerrors "github.com/fwjmath/weird-odd-engine/errors"

	"github.com/hashicorp/go-multierror"

	"github.com/fwjmath/weird-odd-engine/ckpt"
	"github.com/fwjmath/weird-odd-engine/logger"
	"github.com/fwjmath/weird-odd-engine/primes"
	"github.com/fwjmath/weird-odd-engine/residue"
	"github.com/fwjmath/weird-odd-engine/search"
)

// ErrMissingTable is the config-validation error for an absent prime
// table file.
var ErrMissingTable = fmt.Errorf("prime table file not found")

// ErrMissingInput is the config-validation error for an absent search
// range file.
var ErrMissingInput = fmt.Errorf("search range file not found")

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "number of search worker goroutines")
	primesPath := flag.String("primes", "primes.txt", "prime table file (2064 ascending primes)")
	inputPath := flag.String("input", "inp.txt", "search range file (lower and upper bound)")
	ckptPath := flag.String("ckpt", "ckpt.txt", "checkpoint file")
	resultsPath := flag.String("results", "res.txt", "result log file")
	ckptInterval := flag.Uint64("ckpt-interval", 50_000_000, "candidates swept between checkpoint writes")
	debugFactors := flag.Bool("debug-factors", false, "log the full factorization of every abundant survivor")
	flag.Parse()

	if *workers < 1 {
		*workers = 1
	}

	tbl, lb, ub, err := loadConfig(*primesPath, *inputPath)
	if err != nil {
		logger.Printf(logger.CRITICAL, "startup configuration invalid: %v", err)
		os.Exit(1)
	}

	resultLog, err := ckpt.OpenResultLog(*resultsPath)
	if err != nil {
		logger.Printf(logger.CRITICAL, "opening result log: %v", err)
		os.Exit(1)
	}
	defer resultLog.Close()

	resume, err := ckpt.Load(*ckptPath, *workers)
	if err != nil {
		logger.Printf(logger.CRITICAL, "loading checkpoint: %v", err)
		os.Exit(1)
	}

	broadcaster := ckpt.NewBroadcaster(*ckptPath, resultLog, resume)
	defer broadcaster.Close()

	d := search.NewDriver(tbl, *ckptInterval)
	d.Log = resultLog
	d.Progress = broadcaster
	d.DebugFactors = *debugFactors

	logger.Printf(logger.INFO, "searching [%d, %d) with %d worker(s)", lb, ub, *workers)
	if err := d.Run(context.Background(), lb, ub, *workers, resume); err != nil {
		logger.Printf(logger.CRITICAL, "search aborted: %v", err)
		os.Exit(1)
	}
	logger.Println(logger.INFO, "search complete")
}

// loadConfig loads and validates the prime table and search range,
// aggregating every independent failure instead of stopping at the
// first one, so fixing a broken setup doesn't take one run per mistake.
func loadConfig(primesPath, inputPath string) (tbl *primes.Table, lb, ub uint64, err error) {
	var result *multierror.Error

	if _, statErr := os.Stat(primesPath); statErr != nil {
		result = multierror.Append(result, goerrors.New(ErrMissingTable, "%s", primesPath))
	} else if t, loadErr := primes.Load(primesPath); loadErr != nil {
		result = multierror.Append(result, loadErr)
	} else {
		tbl = t
	}

	if _, statErr := os.Stat(inputPath); statErr != nil {
		result = multierror.Append(result, goerrors.New(ErrMissingInput, "%s", inputPath))
	} else if l, u, rangeErr := loadRange(inputPath); rangeErr != nil {
		result = multierror.Append(result, rangeErr)
	} else {
		lb, ub = l, u
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, 0, 0, err
	}
	return tbl, lb, ub, nil
}

// loadRange reads the search range file's two whitespace-separated
// bounds and rounds both down to a multiple of residue.Span, same as
// the original's own lb-=lb%30/ub-=ub%30 normalization.
func loadRange(path string) (lb, ub uint64, err error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		return 0, 0, goerrors.New(openErr, "opening %s", path)
	}
	defer f.Close()

	if _, scanErr := fmt.Fscan(f, &lb, &ub); scanErr != nil {
		return 0, 0, goerrors.New(scanErr, "parsing %s", path)
	}
	lb -= lb % residue.Span
	ub -= ub % residue.Span
	return lb, ub, nil
}
