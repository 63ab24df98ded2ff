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
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yutoh/mediaprobe/pkg/scheme"
	"github.com/yutoh/mediaprobe/pkg/sniff"
)

func DefineFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List all recognized formats and encryption schemes",
		Long: `The 'formats' command displays the magic byte signatures used for audio and
image content detection, and the file name patterns associated with each
known encryption scheme.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         RunFormats,
	}
}

func RunFormats(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "DOMAIN\tLABEL\tSIGNATURE")
	for _, e := range sniff.Audio().Entries() {
		fmt.Fprintf(w, "audio\t%s\t%s\n", e.Label, hex.EncodeToString(e.Magic))
	}
	for _, e := range sniff.Image().Entries() {
		fmt.Fprintf(w, "image\t%s\t%s\n", e.Label, hex.EncodeToString(e.Magic))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tPATTERNS")
	for _, s := range scheme.Default().Schemes() {
		fmt.Fprintf(w, "%s\t%s\n", s.Name, strings.Join(s.Patterns, ","))
	}
	return w.Flush()
}
