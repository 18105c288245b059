// Command zonfile is the ZON codec's CLI surface (spec §6.3): it reads
// JSON or ZON on a path or stdin and writes the other form to stdout,
// plus two supplemental sub-operations (digest, verify) that exercise
// the rest of the core.
//
// The option-parsing and sub-command dispatch follow the teacher's
// cmd/helios/main.go (itself a thin os.Args[1] switch); the flag
// definitions follow psqldef's go-flags struct-tag idiom
// (cmd/psqldef/psqldef.go in the wider example pack).
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/dxieogo/zon/internal/canon"
	"github.com/dxieogo/zon/internal/decode"
	"github.com/dxieogo/zon/internal/digest"
	"github.com/dxieogo/zon/internal/encode"
	"github.com/dxieogo/zon/internal/verify"
)

// Exit codes per spec §6.3.
const (
	exitOK            = 0
	exitUsage         = 2
	exitDecodeErr     = 3
	exitEncodeErr     = 4
	exitIOErr         = 5
	exitVerifyFailure = 1
)

type cliOptions struct {
	NoStrict   bool `long:"no-strict" description:"decode: relax row/field-count mismatches to best-effort reconstruction"`
	NoSortKeys bool `long:"no-sort-keys" description:"encode: skip sorting root-level keys (their order is then not defined for JSON input); nested keys stay sorted"`
	DotFlatten bool `long:"dot-flatten" description:"encode: emit dot-flattened keys for eligible shallow-scalar objects"`
	Help       bool `long:"help" description:"show this help"`

	Args struct {
		Command string `positional-arg-name:"command"`
		Path    string `positional-arg-name:"path"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.None)
	parser.Usage = "[options] encode|decode|digest|verify [path]"

	if _, err := parser.ParseArgs(argv); err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(parser)
		return exitUsage
	}
	if opts.Help || opts.Args.Command == "" {
		printUsage(parser)
		if opts.Help {
			return exitOK
		}
		return exitUsage
	}

	switch opts.Args.Command {
	case "encode":
		return runEncode(opts)
	case "decode":
		return runDecode(opts)
	case "digest":
		return runDigest(opts)
	case "verify":
		return runVerify(opts)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", opts.Args.Command)
		printUsage(parser)
		return exitUsage
	}
}

func printUsage(parser *flags.Parser) {
	fmt.Fprintln(os.Stderr, "zonfile — Zero Overhead Notation codec")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  zonfile encode <path.json>   JSON on <path> or stdin -> ZON on stdout")
	fmt.Fprintln(os.Stderr, "  zonfile decode <path.zonf>   ZON on <path> or stdin -> JSON on stdout")
	fmt.Fprintln(os.Stderr, "  zonfile digest <path.json>   content digest of the canonical ZON encoding")
	fmt.Fprintln(os.Stderr, "  zonfile verify <vectors.json> check a test-vector file against the codec")
	fmt.Fprintln(os.Stderr, "")
	parser.WriteHelp(os.Stderr)
}

// readInput reads opts.Args.Path, or stdin when Path is empty or "-".
func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func runEncode(opts cliOptions) int {
	data, err := readInput(opts.Args.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		return exitIOErr
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var input interface{}
	if err := dec.Decode(&input); err != nil {
		fmt.Fprintf(os.Stderr, "invalid JSON: %v\n", err)
		return exitEncodeErr
	}

	value, err := canon.Value(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitEncodeErr
	}

	encOpts := encode.DefaultOptions()
	encOpts.SortKeys = !opts.NoSortKeys
	encOpts.DotFlatten = opts.DotFlatten

	text, err := encode.Encode(value, encOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitEncodeErr
	}
	fmt.Println(text)
	return exitOK
}

func runDecode(opts cliOptions) int {
	data, err := readInput(opts.Args.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		return exitIOErr
	}

	decOpts := decode.DefaultOptions()
	decOpts.Strict = !opts.NoStrict

	value, err := decode.Decode(string(data), decOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitDecodeErr
	}

	out, err := json.MarshalIndent(value.ToAny(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitDecodeErr
	}
	fmt.Println(string(out))
	return exitOK
}

func runDigest(opts cliOptions) int {
	data, err := readInput(opts.Args.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		return exitIOErr
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var input interface{}
	if err := dec.Decode(&input); err != nil {
		fmt.Fprintf(os.Stderr, "invalid JSON: %v\n", err)
		return exitEncodeErr
	}

	value, err := canon.Value(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitEncodeErr
	}

	sum, err := digest.Sum(value, encode.DefaultOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitEncodeErr
	}
	fmt.Println(sum)
	return exitOK
}

func runVerify(opts cliOptions) int {
	results, err := verify.VerifyVectors(opts.Args.Path)
	for _, r := range results {
		status := "PASS"
		if !r.Pass {
			status = "FAIL"
		}
		fmt.Printf("  %s: %s\n", r.Name, status)
		if !r.Pass {
			if !r.ZONMatch {
				fmt.Printf("    expected zon: %s\n", r.ExpectedZON)
				fmt.Printf("    got zon:      %s\n", r.GotZON)
			}
			if !r.DigestMatch {
				fmt.Printf("    expected digest: %s\n", r.ExpectedDigest)
				fmt.Printf("    got digest:      %s\n", r.GotDigest)
			}
			if !r.RoundTripMatch {
				fmt.Println("    round-trip decode did not reproduce the canonicalized input")
			}
		}
	}

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exitIOErr
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitVerifyFailure
	}
	fmt.Printf("\nAll %d vectors: PASS\n", len(results))
	return exitOK
}
