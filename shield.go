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

	"github.com/ctessum/sparse"
)

// Header sizes of the tabulated CO self-shielding data (Visser et al.,
// 2009): the grid file opens with 9 descriptive rows and the legend file
// with 3 before the numbers start.
const (
	shieldGridSkipRows   = 9
	shieldLegendSkipRows = 3
)

// ShieldingTable is the precomputed CO photodissociation self-shielding
// grid: a shielding factor for every pair of CO and H2 column densities
// on the tabulated axes. Grid rows follow the H2 axis and grid columns
// the CO axis. Lookups are exact-match only; the model is run on the
// tabulated grid points and no interpolation is defined.
type ShieldingTable struct {
	// NCO and NH2 are the axis values: CO and H2 column densities [cm⁻²],
	// strictly increasing. The two axes need not have the same length.
	NCO []float64
	NH2 []float64

	factors  *sparse.DenseArray // Shape: [len(NH2), len(NCO)]
	ncoIndex map[float64]int
	nh2Index map[float64]int
}

// ShieldingKeyNotFoundError is returned by Factor when a queried column
// density is not a tabulated axis value.
type ShieldingKeyNotFoundError struct {
	Axis  string // "CO" or "H2"
	Value float64
}

func (e *ShieldingKeyNotFoundError) Error() string {
	return fmt.Sprintf("shielding table: %s column density %g is not a tabulated axis value", e.Axis, e.Value)
}

// LoadShieldingFiles loads the CO self-shielding table from the grid and
// legend files at the given paths.
func LoadShieldingFiles(gridPath, legendPath string) (*ShieldingTable, error) {
	g, err := os.Open(gridPath)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: opening shielding grid: %w", err)
	}
	defer g.Close()
	l, err := os.Open(legendPath)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: opening shielding legend: %w", err)
	}
	defer l.Close()
	t, err := LoadShieldingTable(g, l)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: in shielding table %s: %w", gridPath, err)
	}
	return t, nil
}

// LoadShieldingTable parses the whitespace-delimited shielding grid and
// its legend. The first column of the legend is the CO axis, running over
// every legend row; the second column carries the H2 axis, one value per
// grid row (the CO axis is longer than the H2 axis in the published
// table, so trailing legend rows may carry the CO value alone). The first
// shieldGridSkipRows rows of the grid and shieldLegendSkipRows rows of
// the legend are headers. Each grid row must have one column per CO axis
// value, and both axes must be strictly increasing.
func LoadShieldingTable(grid, legend io.Reader) (*ShieldingTable, error) {
	rows, err := readNumericRows(grid, shieldGridSkipRows)
	if err != nil {
		return nil, fmt.Errorf("shielding grid: %w", err)
	}
	nco, nh2, err := readShieldingLegend(legend, len(rows))
	if err != nil {
		return nil, err
	}

	factors := sparse.ZerosDense(len(nh2), len(nco))
	for i, row := range rows {
		if len(row) != len(nco) {
			return nil, fmt.Errorf("shielding grid row %d has %d columns; CO axis has %d values", i+1, len(row), len(nco))
		}
		for j, v := range row {
			factors.Set(v, i, j)
		}
	}

	t := &ShieldingTable{
		NCO:      nco,
		NH2:      nh2,
		factors:  factors,
		ncoIndex: make(map[float64]int, len(nco)),
		nh2Index: make(map[float64]int, len(nh2)),
	}
	for j, v := range nco {
		t.ncoIndex[v] = j
	}
	for i, v := range nh2 {
		t.nh2Index[v] = i
	}
	return t, nil
}

// readShieldingLegend reads the CO axis from the legend's first column
// and the H2 axis from its second, taking exactly one H2 value per grid
// row.
func readShieldingLegend(legend io.Reader, gridRows int) (nco, nh2 []float64, err error) {
	rows, err := readNumericRows(legend, shieldLegendSkipRows)
	if err != nil {
		return nil, nil, fmt.Errorf("shielding legend: %w", err)
	}
	if len(rows) < gridRows {
		return nil, nil, fmt.Errorf("shielding legend has %d rows; grid has %d rows", len(rows), gridRows)
	}
	for i, row := range rows {
		nco = append(nco, row[0])
		if i < gridRows {
			if len(row) < 2 {
				return nil, nil, fmt.Errorf("shielding legend row %d has no H2 column; grid has %d rows", i+1, gridRows)
			}
			nh2 = append(nh2, row[1])
		}
	}
	if err := checkIncreasing("CO", nco); err != nil {
		return nil, nil, err
	}
	if err := checkIncreasing("H2", nh2); err != nil {
		return nil, nil, err
	}
	return nco, nh2, nil
}

func checkIncreasing(axis string, v []float64) error {
	if len(v) == 0 {
		return fmt.Errorf("shielding legend: %s axis is empty", axis)
	}
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			return fmt.Errorf("shielding legend: %s axis is not strictly increasing at row %d", axis, i+1)
		}
	}
	return nil
}

// readNumericRows reads whitespace-delimited float rows from r after
// discarding skip header rows. Blank rows after the header are ignored.
func readNumericRows(r io.Reader, skip int) ([][]float64, error) {
	var rows [][]float64
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lineNo int
	for scanner.Scan() {
		lineNo++
		if lineNo <= skip {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q is not a number", lineNo, f)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Factor returns the shielding factor at CO column density NCO and H2
// column density NH2, the grid cell on the H2 row and CO column of the
// matched axis values. Both values must exactly match a tabulated axis
// value; there is no nearest-neighbor or interpolation fallback.
func (t *ShieldingTable) Factor(NCO, NH2 float64) (float64, error) {
	j, ok := t.ncoIndex[NCO]
	if !ok {
		return 0, &ShieldingKeyNotFoundError{Axis: "CO", Value: NCO}
	}
	i, ok := t.nh2Index[NH2]
	if !ok {
		return 0, &ShieldingKeyNotFoundError{Axis: "H2", Value: NH2}
	}
	return t.factors.Get(i, j), nil
}
