// Command lfocool drives the LFOCool amplitude modulator outside a plugin
// host.
//
// Usage:
//
//	lfocool <command> [flags]
//
// Commands:
//
//	info      print plugin metadata and parameters
//	render    process a sine tone and write a WAV file
//	analyze   estimate LFO rate and depth from rendered or recorded audio
//	play      play a modulated tone live, following edits to a preset file
//
// Examples:
//
//	lfocool info
//	lfocool render -o out.wav -freq 8 -depth-db -6 -seconds 4
//	lfocool analyze -dry dry.wav -wet wet.wav
//	lfocool play -preset live.json
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
)

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(log.Lshortfile)

	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("error: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		usage(os.Stderr)
		return errUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "info":
		return printInfo(stdout)
	case "render":
		return renderCmd(rest, stdout)
	case "analyze":
		return analyzeCmd(rest, stdout)
	case "play":
		return playCmd(rest)
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", cmd)
		usage(os.Stderr)
		return errUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: lfocool <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  info      print plugin metadata and parameters\n")
	fmt.Fprintf(w, "  render    process a sine tone and write a WAV file\n")
	fmt.Fprintf(w, "  analyze   estimate LFO rate and depth from rendered or recorded audio\n")
	fmt.Fprintf(w, "  play      play a modulated tone live, following edits to a preset file\n")
	fmt.Fprintf(w, "\nRun 'lfocool <command> -h' for command flags.\n")
}
