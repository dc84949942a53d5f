package bank

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ithacaplayer/bankgen/internal/gain"
	"github.com/ithacaplayer/bankgen/internal/wav"
)

// smallSpec returns a bank small enough for unit tests: 2 notes, 2 tiers,
// both rates, 10 ms per sample.
func smallSpec() Spec {
	return Spec{
		NoteMin:  60,
		NoteMax:  61,
		Levels:   gain.Levels(2, gain.MinDB, gain.MaxDB),
		Rates:    []Rate{{Hertz: 44100, Tag: "44"}, {Hertz: 48000, Tag: "48"}},
		Duration: 0.01,
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		note, tier int
		tag        string
		want       string
	}{
		{69, 7, "44", "m069-vel7-f44.wav"},
		{21, 0, "48", "m021-vel0-f48.wav"},
		{108, 3, "44", "m108-vel3-f44.wav"},
		{9, 1, "44", "m009-vel1-f44.wav"},
	}
	for _, tt := range tests {
		if got := Filename(tt.note, tt.tier, tt.tag); got != tt.want {
			t.Errorf("Filename(%d, %d, %q): got %q, want %q", tt.note, tt.tier, tt.tag, got, tt.want)
		}
	}
}

func TestFilenameInjective(t *testing.T) {
	spec := DefaultSpec()
	seen := make(map[string]bool, spec.Files())
	for note := spec.NoteMin; note <= spec.NoteMax; note++ {
		for tier := range spec.Levels {
			for _, rate := range spec.Rates {
				name := Filename(note, tier, rate.Tag)
				if seen[name] {
					t.Fatalf("duplicate filename %q", name)
				}
				seen[name] = true
			}
		}
	}
	if len(seen) != 1408 {
		t.Errorf("unique filenames: got %d, want 1408", len(seen))
	}
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec()
	if spec.Files() != 1408 {
		t.Errorf("Files(): got %d, want 1408 (88 notes x 8 tiers x 2 rates)", spec.Files())
	}
	if spec.NoteMin != 21 || spec.NoteMax != 108 {
		t.Errorf("note range: got [%d, %d], want [21, 108]", spec.NoteMin, spec.NoteMax)
	}
	if len(spec.Levels) != 8 {
		t.Errorf("tiers: got %d, want 8", len(spec.Levels))
	}
	if spec.Levels[0] != -30 || math.Abs(spec.Levels[7]+6) > 1e-9 {
		t.Errorf("level endpoints: got [%v, %v], want [-30, -6]", spec.Levels[0], spec.Levels[7])
	}
	if spec.Duration != 5.0 {
		t.Errorf("duration: got %v, want 5.0", spec.Duration)
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	spec := smallSpec()

	var progress bytes.Buffer
	res, err := Generate(spec, dir, &progress)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(res.Files) != spec.Files() {
		t.Errorf("written files: got %d, want %d", len(res.Files), spec.Files())
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != spec.Files() {
		t.Errorf("files on disk: got %d, want %d", len(entries), spec.Files())
	}

	// One progress line per (note, tier) pair.
	lines := strings.Count(progress.String(), "\n")
	if want := 2 * 2; lines != want {
		t.Errorf("progress lines: got %d, want %d", lines, want)
	}
	if !strings.Contains(progress.String(), "Generating C4 (m060) vel 0") {
		t.Errorf("progress missing expected line, got:\n%s", progress.String())
	}

	// Spot-check one file's format and frame count.
	info, samples, err := wav.Read(filepath.Join(dir, "m060-vel1-f48.wav"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.NumChannels != 2 || info.BitDepth != 16 || info.SampleRate != 48000 {
		t.Errorf("format: got %+v", info)
	}
	wantSamples := int(48000*spec.Duration) * 2
	if len(samples) != wantSamples {
		t.Errorf("samples: got %d, want %d", len(samples), wantSamples)
	}
}

func TestGenerateCreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Soundbank", "IthacaPlayer", "instrument")
	if _, err := Generate(smallSpec(), dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output dir not created: %v", err)
	}
}

func TestGenerateDirIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(smallSpec(), path, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when output dir path is a regular file")
	}
}

func TestGenerateIdempotent(t *testing.T) {
	dir := t.TempDir()
	spec := smallSpec()

	if _, err := Generate(spec, dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	name := Filename(60, 0, "44")
	first, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Generate(spec, dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("reruns should produce byte-identical files")
	}
}

// TestGenerateA4 checks the reference sample end to end: A4 at the loudest
// tier and 44100 Hz is a 5 second 440 Hz tone at amplitude 10^(-6/20).
func TestGenerateA4(t *testing.T) {
	dir := t.TempDir()
	spec := Spec{
		NoteMin:  69,
		NoteMax:  69,
		Levels:   gain.Levels(gain.NumTiers, gain.MinDB, gain.MaxDB),
		Rates:    []Rate{{Hertz: 44100, Tag: "44"}},
		Duration: 5.0,
	}

	if _, err := Generate(spec, dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, samples, err := wav.Read(filepath.Join(dir, "m069-vel7-f44.wav"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if info.SampleRate != 44100 || info.NumChannels != 2 || info.BitDepth != 16 {
		t.Fatalf("format: got %+v", info)
	}
	if len(samples) != 441000 {
		t.Fatalf("samples: got %d, want 441000 (5 s x 44100 Hz x 2 channels)", len(samples))
	}

	// Peak should approach amplitude(-6 dB) = 0.5012 of full scale.
	var peak int16
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	wantPeakF := 0.5012 * 32767
	wantPeak := int16(wantPeakF) // 16422
	if peak < wantPeak-100 || peak > wantPeak+100 {
		t.Errorf("peak: got %d, want about %d", peak, wantPeak)
	}
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	spec := smallSpec()
	if _, err := Generate(spec, dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	res, err := Verify(spec, dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !res.OK() {
		t.Fatalf("fresh bank should verify clean: %+v", res)
	}
	if res.Checked != spec.Files() {
		t.Errorf("checked: got %d, want %d", res.Checked, spec.Files())
	}

	// A removed file is reported missing.
	missing := Filename(61, 1, "48")
	if err := os.Remove(filepath.Join(dir, missing)); err != nil {
		t.Fatal(err)
	}
	res, err = Verify(spec, dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(res.Missing) != 1 || res.Missing[0] != missing {
		t.Errorf("missing: got %v, want [%s]", res.Missing, missing)
	}

	// A corrupt file is reported malformed.
	bad := Filename(60, 0, "44")
	if err := os.WriteFile(filepath.Join(dir, bad), []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	res, err = Verify(spec, dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(res.Bad) != 1 || res.Bad[0] != bad {
		t.Errorf("bad: got %v, want [%s]", res.Bad, bad)
	}
}

func TestVerifyWrongFrameCount(t *testing.T) {
	dir := t.TempDir()
	spec := smallSpec()
	if _, err := Generate(spec, dir, &bytes.Buffer{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Overwrite one file with a valid WAV of the wrong length.
	name := Filename(60, 0, "44")
	if err := wav.Write(filepath.Join(dir, name), 44100, make([]int16, 10)); err != nil {
		t.Fatal(err)
	}

	res, err := Verify(spec, dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(res.Bad) != 1 || res.Bad[0] != name {
		t.Errorf("bad: got %v, want [%s]", res.Bad, name)
	}
}

func TestVerifyMissingDir(t *testing.T) {
	if _, err := Verify(smallSpec(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for nonexistent directory")
	}
}
