package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"git.gammaspectra.live/P2Pool/sbox/sbox"
	"git.gammaspectra.live/P2Pool/sbox/spn"
	"git.gammaspectra.live/P2Pool/sbox/types"
	"git.gammaspectra.live/P2Pool/sbox/utils"
	fasthex "github.com/tmthrgd/go-hex"
)

func usage() {
	_, _ = fmt.Fprintf(os.Stderr, `Usage: %[1]s [-log-level level] [-log-file] <command> [flags]

Commands:
  search    find a polynomial S-box below a differential uniformity threshold
  tables    print the DDT and LAT of an S-box given as [s_0,...,s_n-1]
  permute   apply the 16-bit permutation and nibble substitution to a hex word

Run %[1]s <command> -h for command flags.
`, os.Args[0])
}

func main() {
	logLevel := flag.String("log-level", "info", "Log level: error, info, notice or debug")
	logFile := flag.Bool("log-file", false, "Include source file and line in log lines")
	flag.Usage = usage
	flag.Parse()

	level, err := utils.ParseLogLevel(*logLevel)
	if err != nil {
		utils.Fatalf("%s", err)
	}
	utils.GlobalLogLevel = level
	utils.LogFile = *logFile

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	args := flag.Args()[1:]
	switch flag.Arg(0) {
	case "search":
		err = runSearch(ctx, args)
	case "tables":
		err = runTables(args)
	case "permute":
		err = runPermute(args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		cancel()
		utils.Fatalf("%s: %s", flag.Arg(0), err)
	}
}

func writeJSON(v any) error {
	buf, err := utils.MarshalJSONIndent(v, "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(buf, '\n'))
	return err
}

func runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	size := fs.Int("size", sbox.DefaultSize, "S-box size N, a power of two up to 256")
	threshold := fs.Int("threshold", sbox.DefaultThreshold, "Accept once the differential uniformity is below this value")
	attempts := fs.Int("attempts", sbox.DefaultMaxAttempts, "Maximum number of candidates per worker")
	seed := fs.Uint64("seed", 0, "Seed for the reproducible PCG source, 0 uses crypto/rand")
	shake := fs.String("shake", "", "Hex seed for the reproducible SHAKE256 source, overrides -seed")
	workers := fs.Int("workers", 1, "Independent searches to run concurrently, the first acceptance wins")
	cacheSize := fs.Int("cache", 4096, "Table cache entries, 0 disables caching")
	withLAT := fs.Bool("lat", false, "Also print the LAT of the resulting S-box")
	asJSON := fs.Bool("json", false, "Write results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workers < 1 {
		return errors.New("-workers must be at least 1")
	}

	var shakeSeed []byte
	if *shake != "" {
		var err error
		if shakeSeed, err = fasthex.DecodeString(*shake); err != nil {
			return fmt.Errorf("-shake: %w", err)
		}
	}

	sources := make([]sbox.Source, *workers)
	for i := range sources {
		switch {
		case shakeSeed != nil:
			sources[i] = sbox.NewShakeSource(append(append([]byte(nil), shakeSeed...), byte(i), byte(i>>8)))
		case *seed != 0:
			sources[i] = sbox.NewSeededSource(*seed + uint64(i))
		default:
			sources[i] = sbox.NewSystemSource()
		}
	}

	analyzer := sbox.NewNilAnalyzer()
	if *cacheSize > 0 {
		analyzer = sbox.NewLRUAnalyzer(*cacheSize)
	}

	cfg := sbox.SearchConfig{
		Size:        *size,
		Threshold:   *threshold,
		MaxAttempts: *attempts,
		Analyzer:    analyzer,
	}

	var result *sbox.Result
	var err error
	if len(sources) == 1 {
		result, err = sbox.Search(ctx, cfg, sources[0])
	} else {
		result, err = sbox.SearchParallel(ctx, cfg, sources)
	}
	if err != nil && !errors.Is(err, sbox.ErrSearchExhausted) {
		return err
	}
	if err != nil {
		utils.Errorf("Search", "%s, reporting the last candidate", err)
	}

	var lat *types.Table
	if *withLAT {
		if lat, err = analyzer.LAT(result.SBox); err != nil {
			return err
		}
	}

	if hits, misses := analyzer.Stats(); hits > 0 {
		utils.Debugf("Search", "table cache: %d hits, %d misses", hits, misses)
	}

	if *asJSON {
		return writeJSON(struct {
			*sbox.Result
			LAT *types.Table `json:"lat,omitempty"`
		}{result, lat})
	}

	fmt.Printf("Coefficients: %s\n", result.Coefficients)
	fmt.Printf("S-Box: %s (hex %s)\n", result.SBox, result.SBox.Hex())
	fmt.Printf("Accepted: %t after %d attempts (%d not bijective), differential uniformity %d\n", result.Accepted, result.Attempts, result.Rejected, result.Uniformity)
	fmt.Printf("DDT:\n%s\n", result.DDT)
	if lat != nil {
		fmt.Printf("LAT:\n%s\n", lat)
	}
	return nil
}

func runTables(args []string) error {
	fs := flag.NewFlagSet("tables", flag.ExitOnError)
	strict := fs.Bool("strict", false, "Reject S-boxes that are not permutations")
	asJSON := fs.Bool("json", false, "Write results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("missing S-box, expected [s_0,...,s_n-1]")
	}

	s, err := types.ParseSBox(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	analyzer := sbox.NewNilAnalyzer()
	analyzer.Strict = *strict
	report, err := analyzer.Report(s)
	if err != nil {
		return err
	}
	if !report.Bijective {
		utils.Noticef("Tables", "%s is not a permutation, table invariants do not hold", s)
	}

	if *asJSON {
		return writeJSON(report)
	}

	fmt.Printf("S-Box: %s\n", report.SBox)
	fmt.Printf("DDT:\n%s\n", report.DDT)
	fmt.Printf("LAT:\n%s\n", report.LAT)
	fmt.Printf("Differential uniformity: %d, linearity: %d\n", report.DifferentialUniformity, report.Linearity)
	return nil
}

func runPermute(args []string) error {
	fs := flag.NewFlagSet("permute", flag.ExitOnError)
	inverse := fs.Bool("inverse", false, "Apply the inverse transform")
	round := fs.Bool("round", false, "Apply the round function (substitution, then permutation) instead")
	permuteOnly := fs.Bool("permute-only", false, "Only relocate bits, no substitution")
	asJSON := fs.Bool("json", false, "Write results as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("missing word, expected up to 4 hex digits")
	}

	in, err := types.WordFromString(fs.Arg(0))
	if err != nil {
		return err
	}

	var out types.Word
	switch {
	case *permuteOnly && *inverse:
		out = spn.PermuteInverse(in)
	case *permuteOnly:
		out = spn.Permute(in)
	case *round && *inverse:
		out = spn.RoundInverse(in)
	case *round:
		out = spn.Round(in)
	case *inverse:
		out = spn.TransformInverse(in)
	default:
		out = spn.Transform(in)
	}

	if *asJSON {
		return writeJSON(struct {
			Input  types.Word `json:"input"`
			Output types.Word `json:"output"`
		}{in, out})
	}
	fmt.Printf("%s -> %s\n", in, out)
	return nil
}
