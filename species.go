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

// SpeciesLayout describes the fixed row layout of a .specs file: a block
// of evolved species, a block of conserved species, and a parent table
// linking species names to their initial fractional abundances, separated
// by single-row section markers. Row counts are a property of the file,
// not of this package; DefaultSpeciesLayout matches the Rate12 UMIST
// .specs files.
type SpeciesLayout struct {
	HeaderRows    int // rows before the species block
	SpeciesRows   int // rows in the species block
	SpeciesGap    int // rows between the species and conserved blocks
	ConservedRows int // rows in the conserved-species block
	ConservedGap  int // rows between the conserved block and the parent table
}

// DefaultSpeciesLayout is the layout of the Rate12 UMIST .specs files.
var DefaultSpeciesLayout = SpeciesLayout{
	HeaderRows:    1,
	SpeciesRows:   466,
	SpeciesGap:    1,
	ConservedRows: 2,
	ConservedGap:  1,
}

// SpeciesTable holds the species of one chemistry-type network: the
// evolved species in network order, the conserved species (whose total
// abundance is held fixed rather than evolved), and the parent table of
// initial fractional abundances.
type SpeciesTable struct {
	Species   []string
	Conserved []string

	// ParentAbundance maps a parent species name to its initial
	// fractional abundance.
	ParentAbundance map[string]float64
}

// LoadSpeciesFile loads a species table from the .specs file at path
// using the given layout.
func LoadSpeciesFile(path string, layout SpeciesLayout) (*SpeciesTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: opening species file: %w", err)
	}
	defer f.Close()
	t, err := LoadSpecies(f, layout)
	if err != nil {
		return nil, fmt.Errorf("chemtorch: in species file %s: %w", path, err)
	}
	return t, nil
}

// LoadSpecies parses a whitespace-delimited .specs table from r. Species
// and conserved rows carry the species name in their second column;
// parent rows are (name, fractional abundance) pairs running to the end
// of the file. Species names must be unique within their block.
func LoadSpecies(r io.Reader, layout SpeciesLayout) (*SpeciesTable, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading species file: %w", err)
	}

	speciesStart := layout.HeaderRows
	conservedStart := speciesStart + layout.SpeciesRows + layout.SpeciesGap
	parentStart := conservedStart + layout.ConservedRows + layout.ConservedGap
	if len(lines) < parentStart {
		return nil, fmt.Errorf("species file has %d rows; layout requires at least %d", len(lines), parentStart)
	}

	t := &SpeciesTable{
		Species:         make([]string, 0, layout.SpeciesRows),
		Conserved:       make([]string, 0, layout.ConservedRows),
		ParentAbundance: make(map[string]float64),
	}

	name := func(row int) (string, error) {
		fields := strings.Fields(lines[row])
		if len(fields) < 2 {
			return "", fmt.Errorf("row %d: %d columns; species rows have at least 2", row+1, len(fields))
		}
		return fields[1], nil
	}

	seen := make(map[string]bool)
	for row := speciesStart; row < speciesStart+layout.SpeciesRows; row++ {
		s, err := name(row)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("row %d: duplicate species name %q", row+1, s)
		}
		seen[s] = true
		t.Species = append(t.Species, s)
	}
	seen = make(map[string]bool)
	for row := conservedStart; row < conservedStart+layout.ConservedRows; row++ {
		s, err := name(row)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, fmt.Errorf("row %d: duplicate conserved species name %q", row+1, s)
		}
		seen[s] = true
		t.Conserved = append(t.Conserved, s)
	}
	for row := parentStart; row < len(lines); row++ {
		if strings.TrimSpace(lines[row]) == "" {
			continue
		}
		fields := strings.Fields(lines[row])
		if len(fields) < 2 {
			return nil, fmt.Errorf("row %d: %d columns; parent rows have 2", row+1, len(fields))
		}
		ab, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parent abundance %q is not a number", row+1, fields[1])
		}
		t.ParentAbundance[fields[0]] = ab
	}
	return t, nil
}

// InitialAbundances returns the initial fractional abundance of every
// evolved species, in table order: the parent-table value where one
// exists and zero otherwise.
func (t *SpeciesTable) InitialAbundances() []float64 {
	y := make([]float64, len(t.Species))
	for i, s := range t.Species {
		if ab, ok := t.ParentAbundance[s]; ok {
			y[i] = ab
		}
	}
	return y
}

// ConservedAbundances returns the fixed abundance vector of the conserved
// species: all zero except the configured molecular-hydrogen slot. A nil
// c means DefaultConfig().
func (t *SpeciesTable) ConservedAbundances(c *Config) ([]float64, error) {
	if c == nil {
		c = DefaultConfig()
	}
	x := make([]float64, len(t.Conserved))
	if c.ConservedSlot < 0 || c.ConservedSlot >= len(x) {
		return nil, fmt.Errorf("chemtorch: conserved slot %d is outside the %d-species conserved table", c.ConservedSlot, len(x))
	}
	x[c.ConservedSlot] = c.ConservedAbundance
	return x, nil
}
