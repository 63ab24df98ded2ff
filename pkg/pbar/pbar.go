// Copyright (c) 2025 The mediaprobe authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package pbar renders a single-line terminal progress bar for batch scans.
package pbar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yutoh/mediaprobe/pkg/util/format"
)

const MinRefreshRate = time.Millisecond * 500

// State holds the counters needed to render the progress bar.
type State struct {
	TotalFiles     int
	ProcessedFiles int
	ProcessedBytes int64
	Matches        int
	StartTime      time.Time
	LastUpdateTime time.Time
}

// New initializes a progress bar over a known number of files.
func New(totalFiles int) *State {
	return &State{
		TotalFiles:     totalFiles,
		StartTime:      time.Now(),
		LastUpdateTime: time.Unix(0, 0),
	}
}

// Render redraws the progress line. Unless force is set, redraws are
// throttled to MinRefreshRate.
func (s *State) Render(force bool) {
	if !force && time.Since(s.LastUpdateTime) < MinRefreshRate {
		return
	}
	s.LastUpdateTime = time.Now()

	percentage := 100.0
	if s.TotalFiles > 0 {
		percentage = float64(s.ProcessedFiles) / float64(s.TotalFiles) * 100
	}

	barLength := 20
	filledLen := int(float64(barLength) * percentage / 100)
	var bar string
	if filledLen >= barLength {
		bar = strings.Repeat("=", barLength)
	} else {
		bar = strings.Repeat("=", filledLen) + ">" + strings.Repeat(" ", barLength-filledLen-1)
	}

	// \r rewrites the line in place; trailing spaces clear leftovers from a
	// previously longer line
	fmt.Fprintf(os.Stdout, "\r[INFO] Progress: [%s] %3.0f%% (%d/%d files, %s) | Matches: %d    ",
		bar,
		percentage,
		s.ProcessedFiles,
		s.TotalFiles,
		format.FormatBytes(s.ProcessedBytes),
		s.Matches)

	os.Stdout.Sync()
}

// Finish terminates the progress line.
func (s *State) Finish() {
	s.Render(true)
	fmt.Println()
}
