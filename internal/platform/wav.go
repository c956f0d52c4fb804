package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/wav"
)

// WavHeaderSize is the size of the canonical RIFF/WAVE header
const WavHeaderSize = 44

// Fixed-offset markers of the canonical header
var (
	riffMarker = []byte("RIFF")
	waveMarker = []byte("WAVE")
	fmtMarker  = []byte("fmt ")
	dataMarker = []byte("data")
)

// IsValidWavHeader checks the four fixed-offset markers of a 44-byte header
func IsValidWavHeader(header []byte) bool {
	if len(header) < WavHeaderSize {
		return false
	}

	return bytes.Equal(header[0:4], riffMarker) &&
		bytes.Equal(header[8:12], waveMarker) &&
		bytes.Equal(header[12:16], fmtMarker) &&
		bytes.Equal(header[36:40], dataMarker)
}

// IsValidWavFile reads the first 44 bytes of path and validates them.
// Missing files, short reads and I/O errors all report false.
func IsValidWavFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, WavHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return false
	}

	return IsValidWavHeader(header)
}

// WavInfo describes the PCM format of a WAV file
type WavInfo struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// String formats the info for display, e.g. "44100 Hz · 2 ch · 16 bit · 01:05"
func (i WavInfo) String() string {
	total := int(i.Duration.Seconds())
	return fmt.Sprintf("%d Hz · %d ch · %d bit · %02d:%02d",
		i.SampleRate, i.Channels, i.BitDepth, total/60, total%60)
}

// ReadWavInfo decodes format chunk and duration of the WAV file at path
func ReadWavInfo(path string) (WavInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return WavInfo{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return WavInfo{}, fmt.Errorf("not a valid wav file: %s", path)
	}

	if err := dec.FwdToPCM(); err != nil {
		return WavInfo{}, fmt.Errorf("failed to locate data chunk: %w", err)
	}

	info := WavInfo{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}

	bytesPerSecond := int64(info.SampleRate) * int64(info.Channels) * int64(info.BitDepth) / 8
	if bytesPerSecond <= 0 {
		return WavInfo{}, fmt.Errorf("invalid wav format in %s", path)
	}
	info.Duration = time.Duration(dec.PCMLen() * int64(time.Second) / bytesPerSecond)

	return info, nil
}
