package bank

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ithacaplayer/bankgen/internal/gain"
	"github.com/ithacaplayer/bankgen/internal/paths"
	"github.com/ithacaplayer/bankgen/internal/synth"
	"github.com/ithacaplayer/bankgen/internal/tuning"
	"github.com/ithacaplayer/bankgen/internal/wav"
)

// Rate pairs a sample rate in Hz with the short tag used in filenames.
type Rate struct {
	Hertz int
	Tag   string
}

// Spec describes the bank to enumerate: a contiguous MIDI note range, one
// decibel level per velocity tier, the sample rates to render, and the
// per-sample duration in seconds.
type Spec struct {
	NoteMin  int
	NoteMax  int
	Levels   []float64 // dB per velocity tier, index = tier
	Rates    []Rate
	Duration float64
}

// DefaultSpec returns the fixed IthacaPlayer bank: the 88 piano notes
// (MIDI 21-108), 8 velocity tiers from -30 dB to -6 dB, 44100 and 48000 Hz,
// 5 seconds per sample.
func DefaultSpec() Spec {
	return Spec{
		NoteMin:  21,
		NoteMax:  108,
		Levels:   gain.Levels(gain.NumTiers, gain.MinDB, gain.MaxDB),
		Rates:    []Rate{{Hertz: 44100, Tag: "44"}, {Hertz: 48000, Tag: "48"}},
		Duration: 5.0,
	}
}

// Files returns the total number of files the spec enumerates.
func (s Spec) Files() int {
	return (s.NoteMax - s.NoteMin + 1) * len(s.Levels) * len(s.Rates)
}

// Filename returns the bank file name for a (note, tier, rate tag) triple:
// m{note:03d}-vel{tier}-f{tag}.wav. The name is an injective function of the
// triple over the enumerated ranges; IthacaPlayer resolves samples by this
// exact pattern, so it must not change.
func Filename(note, tier int, tag string) string {
	return fmt.Sprintf("m%03d-vel%d-f%s.wav", note, tier, tag)
}

// WrittenFile records one output file of a generation run.
type WrittenFile struct {
	Name   string
	Note   int
	Tier   int
	RateHz int
}

// Result summarizes a completed generation run.
type Result struct {
	Dir   string
	Files []WrittenFile
}

// Generate renders and writes every (note, tier, rate) combination of spec
// into dir, creating the directory first if needed. Notes are the outer
// loop, tiers the middle, rates the inner; one progress line is written per
// (note, tier) pair before both rate variants are rendered. Existing files
// are overwritten. The first write error aborts the run and propagates.
//
// Output is fully deterministic: no randomness and no embedded timestamps,
// so reruns produce byte-identical files.
func Generate(spec Spec, dir string, progress io.Writer) (Result, error) {
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return Result{}, fmt.Errorf("bank: create %s: %w", dir, err)
	}

	res := Result{Dir: dir, Files: make([]WrittenFile, 0, spec.Files())}
	for note := spec.NoteMin; note <= spec.NoteMax; note++ {
		freq := tuning.Frequency(note)
		for tier, db := range spec.Levels {
			amp := gain.Amplitude(db)
			fmt.Fprintf(progress, "Generating %s (m%03d) vel %d: %.1f dB, %.2f Hz\n",
				tuning.Name(note), note, tier, db, freq)

			for _, rate := range spec.Rates {
				name := Filename(note, tier, rate.Tag)
				samples := synth.Sine(rate.Hertz, spec.Duration, freq, amp)
				if err := wav.Write(filepath.Join(dir, name), rate.Hertz, samples); err != nil {
					return res, fmt.Errorf("bank: %s: %w", name, err)
				}
				res.Files = append(res.Files, WrittenFile{
					Name:   name,
					Note:   note,
					Tier:   tier,
					RateHz: rate.Hertz,
				})
			}
		}
	}
	return res, nil
}

// VerifyResult reports the outcome of checking a bank directory.
type VerifyResult struct {
	Checked int
	Missing []string // expected files not present
	Bad     []string // present but wrong format or frame count
}

// OK reports whether every expected file was present and well-formed.
func (r VerifyResult) OK() bool {
	return len(r.Missing) == 0 && len(r.Bad) == 0
}

// Verify checks that dir contains every file spec enumerates, decodes each
// one, and confirms the stereo 16-bit format, sample rate, and frame count.
func Verify(spec Spec, dir string) (VerifyResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return VerifyResult{}, fmt.Errorf("bank: %w", err)
	}

	var res VerifyResult
	for note := spec.NoteMin; note <= spec.NoteMax; note++ {
		for tier := range spec.Levels {
			for _, rate := range spec.Rates {
				name := Filename(note, tier, rate.Tag)
				path := filepath.Join(dir, name)
				res.Checked++

				if _, err := os.Stat(path); err != nil {
					res.Missing = append(res.Missing, name)
					continue
				}
				info, samples, err := wav.Read(path)
				if err != nil {
					res.Bad = append(res.Bad, name)
					continue
				}
				wantSamples := int(float64(rate.Hertz)*spec.Duration) * wav.NumChannels
				if info.NumChannels != wav.NumChannels ||
					info.BitDepth != wav.BitDepth ||
					info.SampleRate != rate.Hertz ||
					len(samples) != wantSamples {
					res.Bad = append(res.Bad, name)
				}
			}
		}
	}
	return res, nil
}
