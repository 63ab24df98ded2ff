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

// Package report streams XML classification reports produced by batch scans.
package report

import (
	"encoding/xml"
	"io"
	"os"
	"os/user"
	"runtime"
	"strconv"
	"time"

	"github.com/yutoh/mediaprobe/pkg/sysinfo"
)

// Header is the root element of a classification report.
type Header struct {
	XMLName xml.Name `xml:"mediaprobe_report"`
	Creator Creator  `xml:"creator"`
	Source  Source   `xml:"source"`
}

// Creator describes the software that produced the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

// ExecEnv records the operating system and host the scan ran on.
type ExecEnv struct {
	OS      string `xml:"os_sysname"`
	Release string `xml:"os_release"`
	Version string `xml:"os_version"`
	Host    string `xml:"host"`
	Arch    string `xml:"arch"`
	UID     int    `xml:"uid"`
	Start   string `xml:"start_time"`
}

// Source describes the scanned tree.
type Source struct {
	RootPath string `xml:"root_path"`
}

// FileObject is one classified file.
type FileObject struct {
	XMLName   xml.Name `xml:"fileobject"`
	Filename  string   `xml:"filename"`
	FileSize  uint64   `xml:"filesize"`
	Scheme    string   `xml:"scheme,omitempty"`     // encryption scheme, from the name
	Format    string   `xml:"format,omitempty"`     // audio/image label, from the content
	MatchedBy string   `xml:"matched_by,omitempty"` // "name" or "content"
}

// Writer streams a report document element by element, so large scans never
// buffer the whole report in memory.
type Writer struct {
	w   *xml.Encoder
	out io.Writer
}

// NewWriter wraps out in a report writer with two-space indentation.
func NewWriter(out io.Writer) *Writer {
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	return &Writer{w: enc, out: out}
}

// WriteHeader writes the XML declaration and the opening report element.
func (w *Writer) WriteHeader(hdr Header) error {
	if _, err := w.out.Write([]byte(xml.Header)); err != nil {
		return err
	}

	start := xml.StartElement{Name: xml.Name{Local: "mediaprobe_report"}}
	if err := w.w.EncodeToken(start); err != nil {
		return err
	}

	if err := w.w.Encode(hdr.Creator); err != nil {
		return err
	}
	return w.w.Encode(hdr.Source)
}

// WriteFileObject appends one classified file to the report.
func (w *Writer) WriteFileObject(obj FileObject) error {
	return w.w.Encode(obj)
}

// Close terminates the document and flushes the encoder.
func (w *Writer) Close() error {
	if err := w.w.EncodeToken(xml.EndElement{Name: xml.Name{Local: "mediaprobe_report"}}); err != nil {
		return err
	}
	return w.w.Flush()
}

// GetExecEnv snapshots the current execution environment for a report
// header.
func GetExecEnv() ExecEnv {
	sinfo, err := sysinfo.Stat()
	if err != nil {
		sinfo = &sysinfo.SysUnknown
	}

	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	uid := 0
	if u, err := user.Current(); err == nil {
		if n, err := strconv.Atoi(u.Uid); err == nil {
			uid = n
		}
	}

	return ExecEnv{
		OS:      sinfo.Name,
		Release: sinfo.Release,
		Version: sinfo.Version,
		Host:    host,
		Arch:    runtime.GOARCH,
		UID:     uid,
		Start:   time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
