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

import "fmt"

// UnknownReactionTypeError is returned by Rates when a reaction carries a
// type tag that matches none of the known rate-law categories and the
// Arrhenius fallback is disabled.
type UnknownReactionTypeError struct {
	Index int // 1-based reaction index
	Type  ReactionType
}

func (e *UnknownReactionTypeError) Error() string {
	return fmt.Sprintf("unknown reaction type %q for reaction %d", string(e.Type), e.Index)
}

// InvalidPhysicalStateError is returned by Rates when a temperature-
// dependent rate law is requested at a non-positive gas temperature.
type InvalidPhysicalStateError struct {
	T float64
}

func (e *InvalidPhysicalStateError) Error() string {
	return fmt.Sprintf("invalid physical state: temperature %g K must be positive", e.T)
}

// Rates computes the rate coefficient of every reaction in the database
// at gas temperature T [K], radiation dilution factor delta [-], and dust
// extinction Av [mag]. The returned vector is freshly allocated on every
// call, ordered by reaction index, and has length db.Len().
//
// Dispatch follows the reaction type tag: CP reactions use the direct
// cosmic-ray ionisation law, CR the cosmic-ray-induced photoreaction law,
// PH the photodissociation law, and the two-body types the Arrhenius law.
// IP and AP entries are internal-photon bookkeeping rows and contribute a
// coefficient of exactly zero. Any other tag is an error unless
// c.ArrheniusFallback is set. A nil c means DefaultConfig().
//
// Rates does not mutate the database and is safe to call concurrently on
// a shared *RateDB.
func (db *RateDB) Rates(c *Config, T, delta, Av float64) ([]float64, error) {
	cons := c.constants()
	k := make([]float64, db.Len())
	for i, typ := range db.Types {
		switch {
		case typ == CP:
			k[i] = cons.CosmicRayIonisation(db.Alpha[i])
		case typ == CR:
			if T <= 0 {
				return nil, &InvalidPhysicalStateError{T: T}
			}
			k[i] = cons.CosmicRayPhotoreaction(db.Alpha[i], db.Beta[i], db.Gamma[i], T)
		case typ == PH:
			k[i] = cons.Photodissociation(db.Alpha[i], db.Gamma[i], delta, Av)
		case typ == IP, typ == AP:
			k[i] = 0
		case twoBody[typ] || c.arrheniusFallback():
			if T <= 0 {
				return nil, &InvalidPhysicalStateError{T: T}
			}
			k[i] = cons.Arrhenius(db.Alpha[i], db.Beta[i], db.Gamma[i], T)
		default:
			return nil, &UnknownReactionTypeError{Index: i + 1, Type: typ}
		}
	}
	return k, nil
}
