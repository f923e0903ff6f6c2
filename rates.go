/*
Copyright © 2023 the ChemTorch authors.
This file is part of ChemTorch.

ChemTorch is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ChemTorch is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ChemTorch.  If not, see <http://www.gnu.org/licenses/>.
*/

package chemtorch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Rate file field layout (Rate12 UMIST database, colon-delimited):
// field 0 is the 1-based reaction index, field 1 the reaction type tag,
// and fields 9–11 the α, β, γ fit parameters. The reactant and product
// name fields in between are not needed to compute rate coefficients.
const (
	rateFieldType  = 1
	rateFieldAlpha = 9
	rateFieldBeta  = 10
	rateFieldGamma = 11
	rateMinFields  = rateFieldGamma + 1
)

// RateDB is a reaction-rate database: parallel arrays holding, for the
// reaction with 1-based index i, its type tag and fit parameters at
// position i-1. A RateDB is immutable once loaded and may be shared
// between concurrent Rates calls.
type RateDB struct {
	Types []ReactionType
	Alpha []float64
	Beta  []float64
	Gamma []float64
}

// Len returns the number of reactions in the database.
func (db *RateDB) Len() int { return len(db.Types) }

// MalformedRateFileError is returned when a rate file cannot be parsed:
// a row with too few fields, a non-integer or non-positive reaction
// index, an unparseable fit parameter, or a gap in the index sequence.
type MalformedRateFileError struct {
	Line   int // 1-based line number, 0 if the error is not tied to a line
	Reason string
}

func (e *MalformedRateFileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("malformed rate file: %s", e.Reason)
	}
	return fmt.Sprintf("malformed rate file: line %d: %s", e.Line, e.Reason)
}

// DuplicateReactionIndexError is returned when two rate-file rows carry
// the same reaction index.
type DuplicateReactionIndexError struct {
	Index int
}

func (e *DuplicateReactionIndexError) Error() string {
	return fmt.Sprintf("duplicate reaction index %d in rate file", e.Index)
}

// LoadRateFile loads the reaction-rate database from the file at path.
// The path is taken as given; this package never resolves data files
// relative to its own location.
func LoadRateFile(path string) (*RateDB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: opening rate file: %w", err)
	}
	defer f.Close()
	db, err := LoadRateDB(f)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: in rate file %s: %w", path, err)
	}
	return db, nil
}

// LoadRateDB parses a colon-delimited reaction-rate table from r. Rows
// may appear in any order; the result is dense and ordered by reaction
// index, which must cover 1..N without gaps or duplicates. Any parse
// problem aborts the load; no partial database is ever returned.
func LoadRateDB(r io.Reader) (*RateDB, error) {
	type row struct {
		typ                ReactionType
		alpha, beta, gamma float64
	}
	rows := make(map[int]row)
	var maxIndex int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lineNo int
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < rateMinFields {
			return nil, &MalformedRateFileError{Line: lineNo, Reason: fmt.Sprintf(
				"%d colon-delimited fields; need at least %d", len(fields), rateMinFields)}
		}
		index, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, &MalformedRateFileError{Line: lineNo, Reason: fmt.Sprintf(
				"reaction index %q is not an integer", fields[0])}
		}
		if index < 1 {
			return nil, &MalformedRateFileError{Line: lineNo, Reason: fmt.Sprintf(
				"reaction index %d is not positive", index)}
		}
		if _, ok := rows[index]; ok {
			return nil, &DuplicateReactionIndexError{Index: index}
		}
		var params [3]float64
		for i, fi := range [3]int{rateFieldAlpha, rateFieldBeta, rateFieldGamma} {
			params[i], err = strconv.ParseFloat(strings.TrimSpace(fields[fi]), 64)
			if err != nil {
				return nil, &MalformedRateFileError{Line: lineNo, Reason: fmt.Sprintf(
					"field %d %q is not a number", fi, fields[fi])}
			}
		}
		rows[index] = row{
			typ:   ReactionType(strings.TrimSpace(fields[rateFieldType])),
			alpha: params[0],
			beta:  params[1],
			gamma: params[2],
		}
		if index > maxIndex {
			maxIndex = index
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading rate file: %w", err)
	}

	db := &RateDB{
		Types: make([]ReactionType, maxIndex),
		Alpha: make([]float64, maxIndex),
		Beta:  make([]float64, maxIndex),
		Gamma: make([]float64, maxIndex),
	}
	for i := 1; i <= maxIndex; i++ {
		rw, ok := rows[i]
		if !ok {
			return nil, &MalformedRateFileError{Reason: fmt.Sprintf(
				"reaction indices are not contiguous: index %d of %d is missing", i, maxIndex)}
		}
		db.Types[i-1] = rw.typ
		db.Alpha[i-1] = rw.alpha
		db.Beta[i-1] = rw.beta
		db.Gamma[i-1] = rw.gamma
	}
	return db, nil
}
