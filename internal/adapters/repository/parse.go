package repository

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/okian/fairway/internal/domain/model"
)

// headerAliases maps launch-monitor export headers onto canonical column
// names. Canonical names are accepted as-is, so round-tripped exports and
// hand-written fixtures both parse.
var headerAliases = map[string]string{
	"ball (mph)":       model.MetricBallSpeed,
	"club (mph)":       model.MetricClubSpeed,
	"smash":            model.MetricSmash,
	"carry (yds)":      model.MetricCarry,
	"total (yds)":      model.MetricTotal,
	"roll (yds)":       model.MetricRoll,
	"spin (rpm)":       model.MetricSpin,
	"height (ft)":      model.MetricHeight,
	"time (s)":         model.MetricFlightTime,
	"aoa (°)":          model.MetricAOA,
	"spin loft (°)":    model.MetricSpinLoft,
	"swing v (°)":      model.MetricSwingV,
	"curve dist (yds)": model.MetricCurveDist,
	"shot":             model.ColumnShot,
	"club":             model.ColumnClub,
}

// canonicalColumn resolves a source header to a canonical column name.
func canonicalColumn(header string) (string, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if c, ok := headerAliases[h]; ok {
		return c, true
	}
	if model.IsMetric(h) || h == model.ColumnShot || h == model.ColumnClub {
		return h, true
	}
	return "", false
}

// parseShotRecords reads one session export into shot rows plus the list
// of canonical columns the file carried. Files without a club column are
// rejected with ErrMissingClubColumn; unknown columns are ignored.
func parseShotRecords(records [][]string) ([]model.Shot, []string, error) {
	if len(records) == 0 {
		return nil, nil, nil
	}

	// Resolve the header row.
	colByIdx := make(map[int]string)
	clubIdx := -1
	var columns []string
	for i, h := range records[0] {
		c, ok := canonicalColumn(h)
		if !ok {
			continue
		}
		colByIdx[i] = c
		columns = append(columns, c)
		if c == model.ColumnClub {
			clubIdx = i
		}
	}
	if clubIdx < 0 {
		return nil, nil, ErrMissingClubColumn
	}

	shots := make([]model.Shot, 0, len(records)-1)
	for _, rec := range records[1:] {
		if len(rec) == 0 {
			continue
		}
		s := model.NewShot()
		for i, cell := range rec {
			c, ok := colByIdx[i]
			if !ok {
				continue
			}
			switch c {
			case model.ColumnClub:
				// Club is always coerced to string, even for numeric cells.
				s.Club = strings.TrimSpace(cell)
			case model.ColumnShot:
				s.Num = parseCell(cell)
			default:
				s.SetMetric(c, parseCell(cell))
			}
		}
		shots = append(shots, s)
	}
	return shots, columns, nil
}

// parseCell converts one cell to a float, NaN for blanks and junk.
func parseCell(cell string) float64 {
	v := strings.TrimSpace(cell)
	if v == "" || v == "-" || v == "--" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// readCSV reads all records, retrying with a semicolon delimiter when the
// export came from a locale that uses one.
func readCSV(data []byte) ([][]string, error) {
	records, err := readCSVDelim(data, ',')
	if err == nil && len(records) > 0 && len(records[0]) > 1 {
		return records, nil
	}
	if semi, semiErr := readCSVDelim(data, ';'); semiErr == nil && len(semi) > 0 && len(semi[0]) > 1 {
		return semi, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}

func readCSVDelim(data []byte, delim rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	return r.ReadAll()
}

// readXLSX reads the first sheet of an XLSX export into CSV-shaped records.
func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx sheet: %w", err)
	}
	return rows, nil
}

// readSessionFile dispatches on the file extension.
func readSessionFile(name string, data []byte) ([][]string, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(name), ".csv"):
		return readCSV(data)
	case strings.HasSuffix(strings.ToLower(name), ".xlsx"):
		return readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
}
