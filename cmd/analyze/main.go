package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/2beens/liftstats/internal/analytics"
	"github.com/2beens/liftstats/internal/insights"
	"github.com/2beens/liftstats/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Errorf("analyze: %s", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := flag.NewFlagSet("analyze", flag.ContinueOnError)
	inPath := flags.String("in", "", "path to a JSON array of workout records (stdin if empty)")
	pretty := flags.Bool("pretty", false, "indent the JSON output")
	markupPath := flags.String("markup", "", "render a saved insight response file to HTML and exit")
	workers := flags.Int("workers", 0, "analytics workers, 1 or less runs sequentially")
	logLevel := flags.String("log-level", "warn", "log level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if *markupPath != "" {
		raw, err := os.ReadFile(*markupPath)
		if err != nil {
			return fmt.Errorf("read markup file: %w", err)
		}
		_, err = fmt.Fprintln(stdout, insights.RenderMarkup(string(raw)))
		return err
	}

	in := stdin
	if *inPath != "" {
		exists, err := pkg.PathExists(*inPath, false)
		if err != nil {
			return fmt.Errorf("check records file: %w", err)
		}
		if !exists {
			return fmt.Errorf("records file not found: %s", *inPath)
		}

		f, err := os.Open(*inPath)
		if err != nil {
			return fmt.Errorf("open records file: %w", err)
		}
		defer f.Close()
		in = f
	}

	records, err := analytics.DecodeRecords(in)
	if err != nil {
		return err
	}
	log.Debugf("decoded %d workout records", len(records))

	result, err := analytics.Engine{Workers: *workers}.Recompute(records)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(result)
}
