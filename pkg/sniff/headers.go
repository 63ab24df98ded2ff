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
package sniff

// asfHeaderGUID is the leading GUID of an ASF (wma) container.
var asfHeaderGUID = []byte{
	0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11,
	0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C,
}

// audioHeaders is the canonical audio table. Order matters: identification
// returns the first prefix match.
var audioHeaders = []Header{
	{Magic: []byte("fLaC"), Label: "flac"},
	{Magic: []byte("ID3"), Label: "mp3"},
	{Magic: []byte("OggS"), Label: "ogg"},
	{Magic: []byte("ftyp"), Label: "m4a"},
	{Magic: asfHeaderGUID, Label: "wma"},
	{Magic: []byte("RIFF"), Label: "wav"},
	{Magic: []byte{0xFF, 0xF1}, Label: "aac"},
	{Magic: []byte("FRM8"), Label: "dff"},
	{Magic: []byte("MAC "), Label: "ape"},
}

// imageHeaders is the canonical image table. Labels are MIME strings.
var imageHeaders = []Header{
	{Magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, Label: "image/png"},
	{Magic: []byte{0xFF, 0xD8, 0xFF}, Label: "image/jpeg"},
	{Magic: []byte{0x42, 0x4D}, Label: "image/bmp"},
}

var (
	audioRegistry = MustRegistry(audioHeaders)
	imageRegistry = MustRegistry(imageHeaders)
)

// Audio returns the built-in audio format registry.
func Audio() *Registry { return audioRegistry }

// Image returns the built-in image format registry.
func Image() *Registry { return imageRegistry }

// IdentifyAudio names the audio format whose magic bytes prefix data.
func IdentifyAudio(data []byte) (string, bool) {
	return audioRegistry.Identify(data)
}

// AudioHeader returns the magic bytes for an audio format label,
// with or without a leading dot.
func AudioHeader(label string) ([]byte, bool) {
	return audioRegistry.Header(label)
}

// IdentifyImage names the image MIME type whose magic bytes prefix data.
func IdentifyImage(data []byte) (string, bool) {
	return imageRegistry.Identify(data)
}

// ImageHeader returns the magic bytes for an image MIME label.
func ImageHeader(label string) ([]byte, bool) {
	return imageRegistry.Header(label)
}
