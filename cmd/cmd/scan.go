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
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yutoh/mediaprobe/internal/logger"
	"github.com/yutoh/mediaprobe/internal/scan"
	"github.com/yutoh/mediaprobe/pkg/util/format"
)

func DefineScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "scan <directory>",
		Short:        "Classify every file under a directory tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunScan,
	}

	cmd.Flags().StringP("output", "o", "", "the path of the XML report file")
	cmd.Flags().String("max-header", "512B", "how many leading bytes to sniff per file")
	cmd.Flags().StringSlice("scheme", nil, "restrict name matching to these schemes")
	cmd.Flags().Bool("no-log", false, "disable the session log file")
	cmd.Flags().String("log-dir", "", "directory for the session log file")
	cmd.Flags().String("log-level", "INFO", "minimum session log level (DEBUG, INFO, WARN, ERROR)")

	return cmd
}

func RunScan(cmd *cobra.Command, args []string) error {
	opts, err := parseOptions(cmd)
	if err != nil {
		return err
	}
	return scan.Scan(args[0], opts)
}

func parseOptions(cmd *cobra.Command) (scan.Options, error) {
	outputFile, _ := cmd.Flags().GetString("output")
	disableLog, _ := cmd.Flags().GetBool("no-log")
	logDir, _ := cmd.Flags().GetString("log-dir")
	logLevel, _ := cmd.Flags().GetString("log-level")
	schemes, _ := cmd.Flags().GetStringSlice("scheme")

	maxHeader, err := getBytes(cmd, "max-header")
	if err != nil {
		return scan.Options{}, err
	}

	return scan.Options{
		ReportFile: outputFile,
		MaxHeader:  maxHeader,
		Schemes:    schemes,
		DisableLog: disableLog,
		LogDir:     logDir,
		LogLevel:   logger.ParseLevel(logLevel),
	}, nil
}

func getBytes(cmd *cobra.Command, name string) (uint64, error) {
	s, _ := cmd.Flags().GetString(name)
	return format.ParseBytes(s)
}
