package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/ithacaplayer/bankgen/internal/audio"
	"github.com/ithacaplayer/bankgen/internal/bank"
	"github.com/ithacaplayer/bankgen/internal/config"
	"github.com/ithacaplayer/bankgen/internal/gain"
	"github.com/ithacaplayer/bankgen/internal/manifest"
	"github.com/ithacaplayer/bankgen/internal/paths"
	"github.com/ithacaplayer/bankgen/internal/synth"
	"github.com/ithacaplayer/bankgen/internal/tuning"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	args := os.Args[1:]
	outputDir := ""
	configPath := ""
	volume := -1

	// Parse flags
	filtered := args[:0]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--output-dir", "-o":
			if i+1 < len(args) {
				outputDir = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --output-dir requires a directory path\n")
				os.Exit(1)
			}
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --config requires a file path\n")
				os.Exit(1)
			}
		case "--volume", "-v":
			if i+1 < len(args) {
				v, err := strconv.Atoi(args[i+1])
				if err != nil || v < 0 || v > 100 {
					fmt.Fprintf(os.Stderr, "Error: volume must be a number between 0 and 100\n")
					os.Exit(1)
				}
				volume = v
				i++
			} else {
				fmt.Fprintf(os.Stderr, "Error: --volume requires a value (0-100)\n")
				os.Exit(1)
			}
		default:
			filtered = append(filtered, args[i])
		}
	}

	// No subcommand means a full generation run.
	cmd := "generate"
	rest := filtered
	if len(filtered) > 0 {
		cmd = filtered[0]
		rest = filtered[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-V", "--version":
		printVersion()
	case "generate":
		generateCmd(outputDir, configPath)
	case "preview":
		previewCmd(rest, configPath, volume)
	case "verify":
		verifyCmd(outputDir, configPath)
	case "history":
		historyCmd(rest)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(os.Stderr, "Run 'bankgen help' for usage.\n")
		os.Exit(1)
	}
}

// resolveDir picks the bank directory: CLI flag > config output_dir >
// platform default.
func resolveDir(outputDir string, cfg config.Config) string {
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	return paths.ResolveOutputDir(outputDir)
}

func generateCmd(outputDir, configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dir := resolveDir(outputDir, cfg)
	spec := bank.DefaultSpec()

	progress := io.Writer(os.Stdout)
	inline := term.IsTerminal(int(os.Stdout.Fd()))
	if inline {
		progress = &inlineProgress{out: os.Stdout}
	}

	started := time.Now()
	res, err := bank.Generate(spec, dir, progress)
	if inline {
		fmt.Println()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	finished := time.Now()

	if cfg.Manifest {
		recordRun(started, finished, res)
	}

	fmt.Printf("Generated %d files in %s\n", len(res.Files), dir)
}

// recordRun appends the run to the manifest database. Best-effort: failures
// go to stderr and never fail the run.
func recordRun(started, finished time.Time, res bank.Result) {
	st, err := manifest.Open(manifest.DefaultPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "manifest: %v\n", err)
		return
	}
	defer st.Close()
	if err := st.Record(started, finished, res); err != nil {
		fmt.Fprintf(os.Stderr, "manifest: %v\n", err)
	}
}

func previewCmd(args []string, configPath string, volume int) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintf(os.Stderr, "Error: expected <note> [tier]\n")
		fmt.Fprintf(os.Stderr, "Usage: bankgen preview [--volume 0-100] <note> [tier]\n")
		os.Exit(1)
	}

	note, err := strconv.Atoi(args[0])
	if err != nil || note < 0 || note > 127 {
		fmt.Fprintf(os.Stderr, "Error: note must be a MIDI note number (0-127)\n")
		os.Exit(1)
	}
	tier := gain.NumTiers - 1
	if len(args) == 2 {
		tier, err = strconv.Atoi(args[1])
		if err != nil || tier < 0 || tier >= gain.NumTiers {
			fmt.Fprintf(os.Stderr, "Error: tier must be between 0 and %d\n", gain.NumTiers-1)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if volume < 0 {
		volume = cfg.DefaultVolume
	}

	freq := tuning.Frequency(note)
	db := gain.TierDB(tier)
	fmt.Printf("Playing %s (m%03d) vel %d: %.1f dB, %.2f Hz\n",
		tuning.Name(note), note, tier, db, freq)

	samples := synth.Sine(audio.SampleRate, bank.DefaultSpec().Duration, freq, gain.Amplitude(db))
	if err := audio.Play(samples, float64(volume)/100.0); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func verifyCmd(outputDir, configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	dir := resolveDir(outputDir, cfg)

	res, err := bank.Verify(bank.DefaultSpec(), dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, name := range res.Missing {
		fmt.Printf("missing: %s\n", name)
	}
	for _, name := range res.Bad {
		fmt.Printf("malformed: %s\n", name)
	}
	fmt.Printf("Checked %d files in %s: %d missing, %d malformed\n",
		res.Checked, dir, len(res.Missing), len(res.Bad))
	if !res.OK() {
		os.Exit(1)
	}
}

func historyCmd(args []string) {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: count must be a positive integer\n")
			os.Exit(1)
		}
		count = n
	}

	path := manifest.DefaultPath()
	if _, err := os.Stat(path); err != nil {
		fmt.Println("No manifest database found. Enable it with \"manifest\": true in config.")
		return
	}

	st, err := manifest.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	runs, err := st.Runs(count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No generation runs recorded yet.")
		return
	}

	for _, r := range runs {
		fmt.Printf("%s  %d files  %s  (%s)\n",
			r.Started.Format("2006-01-02 15:04:05"), r.FileCount, r.OutputDir,
			r.Finished.Sub(r.Started).Round(time.Second))
	}
}

func printVersion() {
	fmt.Printf("bankgen %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage() {
	fmt.Printf("bankgen %s - Generate the IthacaPlayer sine sample bank\n", version)
	fmt.Println(`
Usage:
  bankgen [options] [command]

Options:
  --output-dir, -o <path>   Bank directory (default: platform path or config)
  --config, -c <path>       Path to bankgen-config.json
  --volume, -v <0-100>      Preview volume (default: config or 100)

Commands:
  generate                  Write all 1408 samples (default command)
  preview <note> [tier]     Play one note/tier through the speakers
  verify                    Check an existing bank directory
  history [n]               Show recent generation runs
  version, -V               Show version and build date
  help, -h, --help          Show this help message

Default bank directory:
  Windows:  C:\SoundBanks\IthacaPlayer\instrument
  other:    ~/Soundbank/IthacaPlayer/instrument

Examples:
  bankgen                           Generate the full bank
  bankgen -o ./bank generate        Generate into ./bank
  bankgen preview 69                Play A4 at the loudest tier
  bankgen preview 60 3 -v 50        Play C4, tier 3, half volume
  bankgen verify -o ./bank          Check ./bank for missing/broken files`)
}
