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

// Package scan walks a directory tree and classifies every file against the
// built-in encryption-scheme and format registries, producing an XML report
// and a session log.
package scan

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/yutoh/mediaprobe/internal/env"
	"github.com/yutoh/mediaprobe/internal/logger"
	"github.com/yutoh/mediaprobe/pkg/pbar"
	"github.com/yutoh/mediaprobe/pkg/report"
	"github.com/yutoh/mediaprobe/pkg/scheme"
	"github.com/yutoh/mediaprobe/pkg/sniff"
	"github.com/yutoh/mediaprobe/pkg/streamcheck"
	fmtutil "github.com/yutoh/mediaprobe/pkg/util/format"
)

// DefaultMaxHeader is how many leading bytes are read from each file for
// content sniffing. Every registered magic fits well within it.
const DefaultMaxHeader = 512

type Options struct {
	ReportFile string
	MaxHeader  uint64
	Schemes    []string // restrict name classification to these schemes
	DisableLog bool
	LogDir     string
	LogLevel   logger.Level
}

// Match is one classified file.
type Match struct {
	Path      string
	Size      int64
	Scheme    string // encryption scheme, matched by name
	Format    string // audio format or image MIME, matched by content
	MatchedBy string // "name" or "content"
}

func Scan(root string, opts Options) error {
	if opts.MaxHeader == 0 {
		opts.MaxHeader = DefaultMaxHeader
	}

	classifier, err := schemeClassifier(opts.Schemes)
	if err != nil {
		return err
	}

	session := GenSessionID()

	reportFileName := opts.ReportFile
	if reportFileName == "" {
		reportFileName = fmt.Sprintf("report_%s.xml", session)
	}

	outFile, err := os.Create(reportFileName)
	if err != nil {
		return err
	}
	defer outFile.Close()

	reportWriter := report.NewWriter(outFile)
	defer reportWriter.Close()

	err = reportWriter.WriteHeader(report.Header{
		Creator: report.Creator{
			Package:              env.AppName,
			Version:              env.Version,
			ExecutionEnvironment: report.GetExecEnv(),
		},
		Source: report.Source{RootPath: absPath(root)},
	})
	if err != nil {
		return err
	}

	var logFilePath string
	if !opts.DisableLog {
		logFilePath = absPath(filepath.Join(opts.LogDir, session) + ".log")
	}

	log, logFile, err := setupLogger(logFilePath, opts.LogLevel)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	totalFiles, totalBytes, err := countFiles(root)
	if err != nil {
		return err
	}

	fmt.Println("[INFO] Starting classification...")
	fmt.Printf("[INFO] Source: \t%s\n", absPath(root))
	fmt.Printf("[INFO] Files: \t%d (%s)\n", totalFiles, fmtutil.FormatBytes(totalBytes))

	outLog := "disabled"
	if !opts.DisableLog {
		outLog = logFilePath
	}
	fmt.Printf("[INFO] Output Log: \t%s\n", outLog)

	start := time.Now()
	bar := pbar.New(totalFiles)

	matched := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		m, err := classifyFile(path, info.Size(), classifier, opts.MaxHeader)
		if err != nil {
			log.Warnf("skipping %s: %v", path, err)
		} else if m != nil {
			matched++
			bar.Matches = matched

			log.Infof("%s: scheme=%q format=%q matched_by=%s", path, m.Scheme, m.Format, m.MatchedBy)

			werr := reportWriter.WriteFileObject(report.FileObject{
				Filename:  path,
				FileSize:  uint64(info.Size()),
				Scheme:    m.Scheme,
				Format:    m.Format,
				MatchedBy: m.MatchedBy,
			})
			if werr != nil {
				log.Errorf("unable to write report entry: %v", werr)
			}
		} else {
			log.Debugf("%s: no match", path)
		}

		bar.ProcessedFiles++
		bar.ProcessedBytes += info.Size()
		bar.Render(false)
		return nil
	})
	if err != nil {
		return err
	}
	bar.Finish()

	fmt.Printf("[INFO] Classification completed!\n")
	fmt.Printf("[INFO] Files scanned: \t%d\n", totalFiles)
	fmt.Printf("[INFO] Matches: \t%d\n", matched)
	fmt.Printf("[INFO] Total data: \t%s\n", fmtutil.FormatBytes(totalBytes))
	fmt.Printf("[INFO] Duration: \t%s\n", FormatDurationHMS(time.Since(start)))
	fmt.Printf("[INFO] Report saved to: \t%s\n", absPath(reportFileName))

	if !opts.DisableLog {
		fmt.Printf("[INFO] Detailed scan log: \t%s\n", logFilePath)
	}
	return nil
}

// classifyFile resolves one file: the name is matched against the scheme
// table first; only unmatched files get their header bytes sniffed.
func classifyFile(path string, size int64, classifier *scheme.Classifier, maxHeader uint64) (*Match, error) {
	base := filepath.Base(path)

	if name, ok := classifier.Classify(base); ok {
		return &Match{
			Path:      path,
			Size:      size,
			Scheme:    name,
			MatchedBy: "name",
		}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := streamcheck.Validate(f, streamcheck.DefaultChecks()); err != nil {
		return nil, err
	}

	// the seek probe left the cursor at end-of-stream
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	header := make([]byte, maxHeader)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	header = header[:n]

	if label, ok := sniff.IdentifyAudio(header); ok {
		return &Match{Path: path, Size: size, Format: label, MatchedBy: "content"}, nil
	}
	if label, ok := sniff.IdentifyImage(header); ok {
		return &Match{Path: path, Size: size, Format: label, MatchedBy: "content"}, nil
	}
	return nil, nil
}

// schemeClassifier narrows the built-in table to the requested scheme names,
// preserving declaration order. An empty filter keeps the full table.
func schemeClassifier(names []string) (*scheme.Classifier, error) {
	if len(names) == 0 {
		return scheme.Default(), nil
	}

	var selected []scheme.Scheme
	for _, s := range scheme.Default().Schemes() {
		if slices.Contains(names, s.Name) {
			selected = append(selected, s)
		}
	}
	if len(selected) != len(names) {
		return nil, fmt.Errorf("unknown scheme in filter %v", names)
	}
	return scheme.NewClassifier(selected)
}

func countFiles(root string) (int, int64, error) {
	var files int
	var bytes int64

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files++
		bytes += info.Size()
		return nil
	})
	return files, bytes, err
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GenSessionID creates a unique file name for a scan session,
// formatted as "scan_YYYYMMDD_HHMMSS".
func GenSessionID() string {
	return "scan_" + time.Now().Format("20060102_150405")
}

// FormatDurationHMS formats a duration as HH:MM:SS, or fractional seconds
// below one second.
func FormatDurationHMS(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	totalSeconds := int64(d.Seconds())

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// setupLogger opens the session log file, or discards output when file
// logging is disabled. The returned file, if any, must be closed by the
// caller.
func setupLogger(logFilePath string, minLevel logger.Level) (*logger.Logger, *os.File, error) {
	if logFilePath == "" {
		return logger.Nop(), nil, nil
	}

	logDir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %q: %w", logFilePath, err)
	}
	return logger.New(f, minLevel), f, nil
}
