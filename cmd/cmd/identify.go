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
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/spf13/cobra"
	"github.com/yutoh/mediaprobe/internal/scan"
	"github.com/yutoh/mediaprobe/pkg/scheme"
	"github.com/yutoh/mediaprobe/pkg/sniff"
	"github.com/yutoh/mediaprobe/pkg/streamcheck"
)

func DefineIdentifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "identify <file>",
		Short: "Classify a single file by name and content",
		Long: `The 'identify' command resolves a file against the known encryption scheme
patterns, then sniffs its leading bytes against the audio and image magic
tables. Unrecognized content gets a best-effort type hint.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunIdentify,
	}
}

func RunIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := streamcheck.Validate(f, streamcheck.DefaultChecks()); err != nil {
		return err
	}
	// the seek probe left the cursor at end-of-stream
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return err
	}

	header := make([]byte, scan.DefaultMaxHeader)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	header = header[:n]

	fmt.Printf("File: \t%s\n", streamcheck.DisplayName(f))
	fmt.Printf("Extension: \t%s\n", orNone(scheme.Ext(filepath.Base(path))))

	name, ok := scheme.Classify(filepath.Base(path))
	if ok {
		fmt.Printf("Scheme: \t%s\n", name)
	} else {
		fmt.Printf("Scheme: \tnone\n")
	}

	if label, ok := sniff.IdentifyAudio(header); ok {
		fmt.Printf("Audio format: \t%s\n", label)
		return nil
	}
	if label, ok := sniff.IdentifyImage(header); ok {
		fmt.Printf("Image type: \t%s\n", label)
		return nil
	}

	if ok {
		// encrypted containers are expected to have unrecognizable content
		fmt.Printf("Content: \tunrecognized (consistent with scheme %q)\n", name)
		return nil
	}

	// best-effort hint for content outside the built-in registries
	if t, err := filetype.Match(header); err == nil && t != filetype.Unknown {
		fmt.Printf("Content: \tunsupported (%s, %s)\n", t.Extension, t.MIME.Value)
		return nil
	}

	fmt.Printf("Content: \tunknown\n")
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
