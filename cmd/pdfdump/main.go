// Command pdfdump walks a PDF file's cross-reference table and prints every
// indirect object it finds, exercising bytecursor, token and parser
// together against real file bytes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/go-pdfstruct/pdfcore/parser"
	"github.com/go-pdfstruct/pdfcore/pdflog"
	"github.com/go-pdfstruct/pdfcore/pdfobj"
)

func main() {
	debug := pflag.Bool("debug", false, "log probe misses and resolver failures to stderr")
	pflag.Parse()

	if *debug {
		pdflog.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if pflag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [--debug] <file.pdf>\n", os.Args[0])
		os.Exit(2)
	}

	if err := run(pflag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "pdfdump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var p *parser.ObjectParser
	var entries []parser.XRefEntry

	resolver := parser.ResolverFunc(func(id, gen int64) (pdfobj.Object, bool) {
		for _, e := range entries {
			if int64(e.ObjectID) == id && int64(e.Generation) == gen && e.InUse {
				obj, err := p.ParseIndirectObjectAt(intPtr(int(e.ByteOffset)))
				if err != nil || obj == nil {
					return nil, false
				}
				return obj.Body, true
			}
		}
		return nil, false
	})
	p = parser.New(data, resolver)

	major, minor, err := p.ParseHeader()
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	fmt.Printf("PDF-%d.%d\n", major, minor)

	xrefOffset, err := p.ParseXRefOffset()
	if err != nil {
		return fmt.Errorf("startxref: %w", err)
	}

	entries, err = p.ParseXRefAt(&xrefOffset)
	if err != nil {
		return fmt.Errorf("xref: %w", err)
	}

	trailer, err := p.ParseTrailer()
	if err != nil {
		return fmt.Errorf("trailer: %w", err)
	}
	fmt.Printf("trailer: %s\n", trailer)

	for _, e := range entries {
		if !e.InUse {
			continue
		}
		obj, err := p.ParseIndirectObjectAt(intPtr(int(e.ByteOffset)))
		if err != nil {
			fmt.Printf("%d %d obj: error: %s\n", e.ObjectID, e.Generation, err)
			continue
		}
		if obj == nil {
			fmt.Printf("%d %d obj: nothing found at offset %d\n", e.ObjectID, e.Generation, e.ByteOffset)
			continue
		}
		fmt.Printf("%d %d obj %s\n", obj.ObjectID, obj.Generation, obj.Body)
	}
	return nil
}

func intPtr(i int) *int { return &i }
