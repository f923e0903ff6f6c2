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

// Package chemtorch computes chemical-reaction rate coefficients for an
// astrochemical kinetics model of a circumstellar envelope. It reads a
// UMIST-style reaction-rate database (McElroy et al., 2013) and the matching
// species tables, evaluates the rate law selected by each reaction's type
// tag for a given set of physical conditions (gas temperature, radiation
// dilution factor, and dust extinction), and queries a precomputed CO
// photodissociation self-shielding table. It does not integrate the
// chemistry in time; it only supplies the rate-coefficient vector that an
// ODE right-hand-side evaluator consumes.
package chemtorch

// ReactionType is the two- or three-letter tag in the second field of a
// rate-file row that selects which rate law applies to the reaction.
type ReactionType string

// The reaction types appearing in the Rate12 UMIST database, extended with
// the IP and AP entries used for internal and accompanying photons.
const (
	AD  ReactionType = "AD"  // associative detachment
	CD  ReactionType = "CD"  // collisional dissociation
	CE  ReactionType = "CE"  // charge exchange
	CP  ReactionType = "CP"  // direct cosmic-ray proton ionisation
	CR  ReactionType = "CR"  // cosmic-ray-induced photoreaction
	DR  ReactionType = "DR"  // dissociative recombination
	IN  ReactionType = "IN"  // ion-neutral
	MN  ReactionType = "MN"  // mutual neutralisation
	NN  ReactionType = "NN"  // neutral-neutral
	PH  ReactionType = "PH"  // photoprocess
	RA  ReactionType = "RA"  // radiative association
	REA ReactionType = "REA" // radiative electron attachment
	RR  ReactionType = "RR"  // radiative recombination
	IP  ReactionType = "IP"  // internal photon
	AP  ReactionType = "AP"  // accompanying photon
)

var reactionTypeDescriptions = map[ReactionType]string{
	AD:  "associative detachment",
	CD:  "collisional dissociation",
	CE:  "charge exchange",
	CP:  "direct cosmic-ray proton ionisation",
	CR:  "cosmic-ray-induced photoreaction",
	DR:  "dissociative recombination",
	IN:  "ion-neutral",
	MN:  "mutual neutralisation",
	NN:  "neutral-neutral",
	PH:  "photoprocess",
	RA:  "radiative association",
	REA: "radiative electron attachment",
	RR:  "radiative recombination",
	IP:  "internal photon",
	AP:  "accompanying photon",
}

// Description returns a human-readable description of the reaction type,
// or "unknown reaction type" if t is not one of the known tags.
func (t ReactionType) Description() string {
	if d, ok := reactionTypeDescriptions[t]; ok {
		return d
	}
	return "unknown reaction type"
}

// Known reports whether t is one of the reaction types in the database
// format this package reads.
func (t ReactionType) Known() bool {
	_, ok := reactionTypeDescriptions[t]
	return ok
}

// twoBody lists the reaction types whose rate coefficients follow the
// Arrhenius law.
var twoBody = map[ReactionType]bool{
	AD:  true,
	CD:  true,
	CE:  true,
	DR:  true,
	IN:  true,
	MN:  true,
	NN:  true,
	RA:  true,
	REA: true,
	RR:  true,
}

// Config holds the model settings that are configuration rather than data:
// the physical constants entering the rate laws, the dispatch strictness,
// and the conserved-species slot convention. A nil *Config everywhere in
// this package means DefaultConfig().
type Config struct {
	// Constants are the physical constants used by the rate laws. The
	// zero value is replaced by DefaultConstants.
	Constants Constants

	// ArrheniusFallback causes reactions with an unrecognized type tag to
	// be evaluated with the Arrhenius law, reproducing the behavior of
	// the original Fortran77-era rate tables, instead of returning an
	// UnknownReactionTypeError.
	ArrheniusFallback bool

	// ConservedSlot is the index within the conserved-species vector that
	// holds molecular hydrogen, and ConservedAbundance is its fixed
	// fractional abundance. These encode a positional convention of the
	// .specs file layout and must match the species table in use.
	ConservedSlot      int
	ConservedAbundance float64
}

// DefaultConfig returns the configuration matching the Rate12 UMIST
// tables: default constants, strict type dispatch, and molecular hydrogen
// as the second conserved species (slot 1) with a fixed fractional
// abundance of 0.5.
func DefaultConfig() *Config {
	return &Config{
		Constants:          DefaultConstants,
		ConservedSlot:      1,
		ConservedAbundance: 0.5,
	}
}

func (c *Config) constants() Constants {
	if c == nil || c.Constants == (Constants{}) {
		return DefaultConstants
	}
	return c.Constants
}

func (c *Config) arrheniusFallback() bool {
	return c != nil && c.ArrheniusFallback
}
