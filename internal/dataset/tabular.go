package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// headerAliases maps canonical column roles to their accepted header
// spellings (all lowercase).
var headerAliases = map[string][]string{
	"id":   {"id", "dex", "dex id", "dex_id", "number", "no", "#"},
	"name": {"name", "pokemon", "pokémon", "species", "display name"},
}

// DetectCSVDelimiter determines the most likely delimiter by trying comma,
// semicolon, tab, and pipe; the one producing the most consistent multi-
// column row shape wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// LoadCSV reads a canonical list from CSV with delimiter auto-detection.
func LoadCSV(path string) ([]Pokemon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectCSVDelimiter(data)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV dataset %s: %w", path, err)
	}
	return fromRows(rows, path)
}

// LoadXLSX reads a canonical list from the first sheet of a workbook.
func LoadXLSX(path string) ([]Pokemon, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return fromRows(rows, path)
}

// fromRows maps a header row plus data rows to Pokemon entries. Rows with
// a blank name or an unparsable ID are skipped rather than failing the
// whole file.
func fromRows(rows [][]string, path string) ([]Pokemon, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("dataset %s is empty", path)
	}

	idCol, nameCol := -1, -1
	for i, cell := range rows[0] {
		h := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range headerAliases["id"] {
			if h == alias {
				idCol = i
			}
		}
		for _, alias := range headerAliases["name"] {
			if h == alias {
				nameCol = i
			}
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, fmt.Errorf("dataset %s: header must name an id and a name column", path)
	}

	var list []Pokemon
	for _, row := range rows[1:] {
		if idCol >= len(row) || nameCol >= len(row) {
			continue
		}
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[idCol]))
		if err != nil {
			continue
		}
		list = append(list, Pokemon{ID: id, Name: name})
	}
	return list, nil
}
