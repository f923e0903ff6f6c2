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

import "math"

// Constants holds the two physical constants shared by the rate laws.
// They are configuration so that sensitivity experiments can vary them;
// every run of the published model uses DefaultConstants.
type Constants struct {
	// TFrac is the inverse of the 300 K reference temperature that the
	// UMIST rate fits normalize against [1/K].
	TFrac float64

	// Albedo is the dust-grain albedo w [-].
	Albedo float64
}

// DefaultConstants are the constants of the published model.
var DefaultConstants = Constants{
	TFrac:  1. / 300.,
	Albedo: 0.5,
}

// albedoCorrection is the factor 1/(1-w) by which grain scattering
// enhances the cosmic-ray-induced photon flux.
func (c Constants) albedoCorrection() float64 {
	return 1. / (1. - c.Albedo)
}

// Arrhenius returns the rate coefficient of a two-body reaction,
//
//	k = α (T/300)^β exp(-γ/T),
//
// where α is the reaction speed/probability, β the temperature dependence,
// γ the energy barrier [K], and T the gas temperature [K]. The caller must
// ensure T > 0; the formula itself is evaluated with plain IEEE semantics
// and is not clamped.
func (c Constants) Arrhenius(alpha, beta, gamma, T float64) float64 {
	return alpha * math.Pow(T*c.TFrac, beta) * math.Exp(-gamma/T)
}

// CosmicRayIonisation returns the rate coefficient of a direct cosmic-ray
// proton ionisation (type CP), which is the fit parameter α itself,
// independent of temperature and radiation field.
func (c Constants) CosmicRayIonisation(alpha float64) float64 {
	return alpha
}

// CosmicRayPhotoreaction returns the rate coefficient of a reaction driven
// by UV photons generated by cosmic-ray excitation of H2 (type CR),
//
//	k = α (T/300)^β γ / (1-w),
//
// where γ here is the photon efficiency of the fit and w the dust-grain
// albedo. The caller must ensure T > 0.
func (c Constants) CosmicRayPhotoreaction(alpha, beta, gamma, T float64) float64 {
	return alpha * math.Pow(T*c.TFrac, beta) * gamma * c.albedoCorrection()
}

// Photodissociation returns the rate coefficient of a photoprocess
// (type PH) in the ambient UV radiation field,
//
//	k = α δ exp(-γ Av),
//
// where δ is the dilution of the radiation field at the current location
// and Av the dust extinction [mag]. A negative γ·Av is valid and yields a
// coefficient above the unattenuated value.
func (c Constants) Photodissociation(alpha, gamma, delta, Av float64) float64 {
	return alpha * delta * math.Exp(-gamma*Av)
}

// Arrhenius evaluates the two-body rate law with DefaultConstants.
func Arrhenius(alpha, beta, gamma, T float64) float64 {
	return DefaultConstants.Arrhenius(alpha, beta, gamma, T)
}

// CosmicRayIonisation evaluates the CP rate law with DefaultConstants.
func CosmicRayIonisation(alpha float64) float64 {
	return DefaultConstants.CosmicRayIonisation(alpha)
}

// CosmicRayPhotoreaction evaluates the CR rate law with DefaultConstants.
func CosmicRayPhotoreaction(alpha, beta, gamma, T float64) float64 {
	return DefaultConstants.CosmicRayPhotoreaction(alpha, beta, gamma, T)
}

// Photodissociation evaluates the PH rate law with DefaultConstants.
func Photodissociation(alpha, gamma, delta, Av float64) float64 {
	return DefaultConstants.Photodissociation(alpha, gamma, delta, Av)
}
