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
	"errors"
	"strings"
	"testing"
)

func shieldHeader(n int) string {
	return strings.Repeat("# header\n", n)
}

// The CO axis runs over the full first legend column; the H2 axis is the
// second column, one value per grid row, so the last legend row carries
// only a CO value.
const shieldLegendBody = `1.0e+12 1.0e+15
1.0e+14 1.0e+17
1.0e+16 1.0e+19
1.0e+18
`

// Grid rows follow the H2 axis, columns the CO axis: 3 rows by 4 columns.
const shieldGridBody = `1.00e+00 9.00e-01 8.00e-01 7.00e-01
6.00e-01 5.00e-01 4.00e-01 3.00e-01
2.00e-01 1.00e-01 5.00e-02 1.00e-02
`

func loadShieldExample(t *testing.T) *ShieldingTable {
	t.Helper()
	tab, err := LoadShieldingTable(
		strings.NewReader(shieldHeader(shieldGridSkipRows)+shieldGridBody),
		strings.NewReader(shieldHeader(shieldLegendSkipRows)+shieldLegendBody),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestShieldingTableAxes(t *testing.T) {
	tab := loadShieldExample(t)
	if len(tab.NCO) != 4 {
		t.Errorf("CO axis length: want 4, got %d", len(tab.NCO))
	}
	if len(tab.NH2) != 3 {
		t.Errorf("H2 axis length: want 3, got %d", len(tab.NH2))
	}
}

func TestShieldingFactor(t *testing.T) {
	tab := loadShieldExample(t)
	tests := []struct {
		NCO, NH2 float64
		want     float64
	}{
		{1.0e+12, 1.0e+15, 1.00},
		{1.0e+18, 1.0e+15, 0.70},
		{1.0e+14, 1.0e+17, 0.50},
		{1.0e+16, 1.0e+17, 0.40},
		{1.0e+16, 1.0e+19, 0.05},
		{1.0e+18, 1.0e+19, 0.01},
	}
	for _, test := range tests {
		got, err := tab.Factor(test.NCO, test.NH2)
		if err != nil {
			t.Fatalf("Factor(%g, %g): %v", test.NCO, test.NH2, err)
		}
		// Exact-match lookup returns the grid cell itself, no averaging.
		if got != test.want {
			t.Errorf("Factor(%g, %g): want %g, got %g", test.NCO, test.NH2, test.want, got)
		}
	}
}

func TestShieldingFactorOrientation(t *testing.T) {
	// The first CO axis value at the last H2 axis value must read the
	// last grid row, first column, never the transposed cell.
	tab := loadShieldExample(t)
	got, err := tab.Factor(1.0e+12, 1.0e+19)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0.20 {
		t.Errorf("Factor(1.0e+12, 1.0e+19): want 0.20 (H2 row 3, CO column 1), got %g", got)
	}
}

func TestShieldingKeyNotFound(t *testing.T) {
	tab := loadShieldExample(t)

	_, err := tab.Factor(2.0e+12, 1.0e+15)
	var kErr *ShieldingKeyNotFoundError
	if !errors.As(err, &kErr) {
		t.Fatalf("want ShieldingKeyNotFoundError, got %v", err)
	}
	if kErr.Axis != "CO" {
		t.Errorf("miss axis: want CO, got %s", kErr.Axis)
	}

	_, err = tab.Factor(1.0e+12, 2.0e+15)
	if !errors.As(err, &kErr) {
		t.Fatalf("want ShieldingKeyNotFoundError, got %v", err)
	}
	if kErr.Axis != "H2" {
		t.Errorf("miss axis: want H2, got %s", kErr.Axis)
	}

	// 1.0e+18 is on the CO axis but not the H2 axis; the axes are
	// separate key spaces.
	_, err = tab.Factor(1.0e+12, 1.0e+18)
	if !errors.As(err, &kErr) || kErr.Axis != "H2" {
		t.Errorf("CO-only value queried as H2 should miss on the H2 axis; got %v", err)
	}

	// A value near but not exactly on the axis is a miss; there is no
	// nearest-neighbor fallback.
	if _, err := tab.Factor(1.0e+12*(1+1e-12), 1.0e+15); err == nil {
		t.Error("near-miss lookup should fail")
	}
}

func TestLoadShieldingTableErrors(t *testing.T) {
	tests := []struct {
		name         string
		grid, legend string
	}{
		{
			name: "grid rows exceed legend rows",
			grid: shieldHeader(shieldGridSkipRows) + shieldGridBody,
			legend: shieldHeader(shieldLegendSkipRows) +
				"1.0e+12 1.0e+15\n1.0e+14 1.0e+17\n",
		},
		{
			name:   "grid columns do not match CO axis",
			grid:   shieldHeader(shieldGridSkipRows) + "1.0 0.9\n0.7 0.6\n0.4 0.3\n",
			legend: shieldHeader(shieldLegendSkipRows) + shieldLegendBody,
		},
		{
			name: "missing H2 column within grid rows",
			grid: shieldHeader(shieldGridSkipRows) + shieldGridBody,
			legend: shieldHeader(shieldLegendSkipRows) +
				"1.0e+12 1.0e+15\n1.0e+14\n1.0e+16 1.0e+19\n1.0e+18\n",
		},
		{
			name: "non-increasing CO axis",
			grid: shieldHeader(shieldGridSkipRows) + shieldGridBody,
			legend: shieldHeader(shieldLegendSkipRows) +
				"1.0e+12 1.0e+15\n1.0e+12 1.0e+17\n1.0e+16 1.0e+19\n1.0e+18\n",
		},
		{
			name: "non-increasing H2 axis",
			grid: shieldHeader(shieldGridSkipRows) + shieldGridBody,
			legend: shieldHeader(shieldLegendSkipRows) +
				"1.0e+12 1.0e+15\n1.0e+14 1.0e+15\n1.0e+16 1.0e+19\n1.0e+18\n",
		},
		{
			name:   "non-numeric grid cell",
			grid:   shieldHeader(shieldGridSkipRows) + "1.0 0.9 0.8 x\n0.7 0.6 0.5 0.4\n0.3 0.2 0.1 0.05\n",
			legend: shieldHeader(shieldLegendSkipRows) + shieldLegendBody,
		},
		{
			name:   "empty legend",
			grid:   shieldHeader(shieldGridSkipRows) + shieldGridBody,
			legend: shieldHeader(shieldLegendSkipRows),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := LoadShieldingTable(strings.NewReader(test.grid), strings.NewReader(test.legend))
			if err == nil {
				t.Error("want error, got nil")
			}
		})
	}
}
