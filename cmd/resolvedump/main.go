// resolvedump resolves scraped text against the canonical Pokémon name
// index and dumps the outcome as JSON. It is the debugging companion for
// the gift/trade/quest scrapers: feed it the raw cell text one line at a
// time and see which lines resolve, to what, and which fall through.
//
// Usage:
//
//	resolvedump -dataset data/pokemon.json -in scraped.txt
//	grep Route wiki_dump.txt | resolvedump -dataset data/pokemon.csv
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/fusiondex/dexbuild/internal/dataset"
	"github.com/fusiondex/dexbuild/internal/logger"
	"github.com/fusiondex/dexbuild/internal/names"
)

// resolution is one resolved input line.
type resolution struct {
	Text string `json:"text"`
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// report is the JSON document written to the output.
type report struct {
	Resolved   []resolution `json:"resolved"`
	Unresolved []string     `json:"unresolved"`
	Filtered   []string     `json:"filtered"` // rejected by the pre-filter, never probed
}

func main() {
	datasetPath := flag.String("dataset", "data/pokemon.json", "canonical dataset file (json/csv/xlsx)")
	inPath := flag.String("in", "-", "input text file, one candidate per line (- = stdin)")
	outPath := flag.String("out", "-", "output JSON file (- = stdout)")
	noFilter := flag.Bool("no-filter", false, "probe every line, skipping the candidate pre-filter")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log := logger.New(*level, "")
	defer func() { _ = log.Sync() }()

	list, err := dataset.Load(*datasetPath)
	if err != nil {
		log.Fatal("failed to load dataset", zap.Error(err))
	}
	idx := names.BuildIndex(dataset.Refs(list))
	log.Info("index built",
		zap.Int("entries", len(list)),
		zap.Int("variants", idx.Len()))

	lines, err := readLines(*inPath)
	if err != nil {
		log.Fatal("failed to read input", zap.Error(err))
	}

	rep := resolve(idx, lines, *noFilter)
	log.Info("resolution complete",
		zap.Int("resolved", len(rep.Resolved)),
		zap.Int("unresolved", len(rep.Unresolved)),
		zap.Int("filtered", len(rep.Filtered)))

	if err := writeReport(*outPath, rep); err != nil {
		log.Fatal("failed to write report", zap.Error(err))
	}
}

func resolve(idx *names.Index, lines []string, noFilter bool) report {
	rep := report{
		Resolved:   []resolution{},
		Unresolved: []string{},
		Filtered:   []string{},
	}
	for _, line := range lines {
		if !noFilter && !names.IsPotentialPokemonName(line) {
			rep.Filtered = append(rep.Filtered, line)
			continue
		}
		id, ok := idx.ResolveLoose(line)
		if !ok {
			rep.Unresolved = append(rep.Unresolved, line)
			continue
		}
		rep.Resolved = append(rep.Resolved, resolution{
			Text: line,
			ID:   id,
			Name: displayName(idx, id),
		})
	}
	return rep
}

// displayName covers the sentinel IDs, which have no canonical entry.
func displayName(idx *names.Index, id int) string {
	if name, ok := idx.NameOf(id); ok {
		return name
	}
	switch id {
	case names.EggID:
		return "Egg"
	case names.FossilID:
		return "Fossil"
	}
	return ""
}

func readLines(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan input: %w", err)
	}
	return lines, nil
}

func writeReport(path string, rep report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
