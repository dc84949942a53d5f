package wav

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// All bank samples are stereo 16-bit uncompressed PCM.
const (
	NumChannels = 2
	BitDepth    = 16
	pcmFormat   = 1
)

// Write serializes interleaved stereo 16-bit samples to path as an
// uncompressed PCM WAV file, creating or truncating the file. No metadata
// chunks are written. Filesystem and encoder errors propagate to the caller.
func Write(path string, sampleRate int, samples []int16) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wav: %w", err)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := gowav.NewEncoder(f, sampleRate, BitDepth, NumChannels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: NumChannels},
		Data:           data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("wav: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("wav: finalize %s: %w", path, err)
	}
	return f.Close()
}

// Info describes the format of a decoded WAV file.
type Info struct {
	SampleRate  int
	NumChannels int
	BitDepth    int
}

// Read decodes a PCM WAV file and returns its format and interleaved
// samples. Used by the verify command and round-trip tests.
func Read(path string) (Info, []int16, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, nil, fmt.Errorf("wav: %w", err)
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Info{}, nil, fmt.Errorf("wav: decode %s: %w", path, err)
	}
	if !dec.IsValidFile() {
		return Info{}, nil, fmt.Errorf("wav: %s is not a valid WAV file", path)
	}

	info := Info{
		SampleRate:  int(dec.SampleRate),
		NumChannels: int(dec.NumChans),
		BitDepth:    int(dec.BitDepth),
	}
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return info, samples, nil
}
