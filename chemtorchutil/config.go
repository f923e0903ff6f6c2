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

// Package chemtorchutil configures the chemtorch model from a TOML
// configuration file: where the static data tables live and which model
// settings to run them with. Data-file locations always come from the
// configuration, never from the location of the package itself.
package chemtorchutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	chemtorch "github.com/silkemaes/ChemTorch"
)

// configDefaults are the configuration options and their default values,
// matching the Rate12 UMIST data release the model ships with.
var configDefaults = map[string]interface{}{
	"DataDir":           ".",
	"RateFile":          "rate16_IP_2330K_AP_6000K.rates",
	"SpeciesFileFormat": "rate16_IP_6000K_%srich_mean_Htot.specs",
	"ChemistryType":     "C",
	"ShieldFile":        "shield.co.dat",
	"ShieldLegendFile":  "shield.co.legend",

	"Constants.TFrac":       chemtorch.DefaultConstants.TFrac,
	"Constants.GrainAlbedo": chemtorch.DefaultConstants.Albedo,
	"ArrheniusFallback":     false,
	"ConservedSlot":         1,
	"ConservedAbundance":    0.5,

	"SpeciesLayout.HeaderRows":    chemtorch.DefaultSpeciesLayout.HeaderRows,
	"SpeciesLayout.SpeciesRows":   chemtorch.DefaultSpeciesLayout.SpeciesRows,
	"SpeciesLayout.SpeciesGap":    chemtorch.DefaultSpeciesLayout.SpeciesGap,
	"SpeciesLayout.ConservedRows": chemtorch.DefaultSpeciesLayout.ConservedRows,
	"SpeciesLayout.ConservedGap":  chemtorch.DefaultSpeciesLayout.ConservedGap,
}

// InitializeConfig returns a Viper configuration initialized with the
// model defaults and, if file is not empty, the settings read from the
// TOML configuration file at that path.
func InitializeConfig(file string) (*viper.Viper, error) {
	v := viper.New()
	for key, val := range configDefaults {
		v.SetDefault(key, val)
	}
	if file != "" {
		v.SetConfigFile(os.ExpandEnv(file))
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("chemtorchutil: reading configuration file: %w", err)
		}
	}
	return v, nil
}

// ModelConfig builds the chemtorch model configuration from v.
func ModelConfig(v *viper.Viper) *chemtorch.Config {
	return &chemtorch.Config{
		Constants: chemtorch.Constants{
			TFrac:  cast.ToFloat64(v.Get("Constants.TFrac")),
			Albedo: cast.ToFloat64(v.Get("Constants.GrainAlbedo")),
		},
		ArrheniusFallback:  cast.ToBool(v.Get("ArrheniusFallback")),
		ConservedSlot:      cast.ToInt(v.Get("ConservedSlot")),
		ConservedAbundance: cast.ToFloat64(v.Get("ConservedAbundance")),
	}
}

// speciesLayout builds the .specs row layout from v.
func speciesLayout(v *viper.Viper) chemtorch.SpeciesLayout {
	return chemtorch.SpeciesLayout{
		HeaderRows:    cast.ToInt(v.Get("SpeciesLayout.HeaderRows")),
		SpeciesRows:   cast.ToInt(v.Get("SpeciesLayout.SpeciesRows")),
		SpeciesGap:    cast.ToInt(v.Get("SpeciesLayout.SpeciesGap")),
		ConservedRows: cast.ToInt(v.Get("SpeciesLayout.ConservedRows")),
		ConservedGap:  cast.ToInt(v.Get("SpeciesLayout.ConservedGap")),
	}
}

// dataPath joins a configured file name onto the configured data
// directory, expanding environment variables in both.
func dataPath(v *viper.Viper, name string) string {
	return filepath.Join(os.ExpandEnv(cast.ToString(v.Get("DataDir"))), os.ExpandEnv(name))
}

// SpeciesFileName returns the name of the .specs file for the configured
// chemistry type. SpeciesFileFormat may either name the file directly or
// contain a %s verb that receives the chemistry type ("C" or "O").
func SpeciesFileName(v *viper.Viper) string {
	format := cast.ToString(v.Get("SpeciesFileFormat"))
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, cast.ToString(v.Get("ChemistryType")))
	}
	return format
}

// Tables holds the static data tables of one model run, loaded once and
// shared read-only by every rate evaluation.
type Tables struct {
	Rates     *chemtorch.RateDB
	Species   *chemtorch.SpeciesTable
	Shielding *chemtorch.ShieldingTable
}

// LoadTables loads the rate database, species table, and CO self-shielding
// table from the locations v configures.
func LoadTables(v *viper.Viper) (*Tables, error) {
	ratePath := dataPath(v, cast.ToString(v.Get("RateFile")))
	rates, err := chemtorch.LoadRateFile(ratePath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"path":      ratePath,
		"reactions": rates.Len(),
	}).Info("loaded reaction-rate database")

	speciesPath := dataPath(v, SpeciesFileName(v))
	species, err := chemtorch.LoadSpeciesFile(speciesPath, speciesLayout(v))
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"path":      speciesPath,
		"species":   len(species.Species),
		"conserved": len(species.Conserved),
	}).Info("loaded species table")

	gridPath := dataPath(v, cast.ToString(v.Get("ShieldFile")))
	legendPath := dataPath(v, cast.ToString(v.Get("ShieldLegendFile")))
	shielding, err := chemtorch.LoadShieldingFiles(gridPath, legendPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"path": gridPath,
		"NCO":  len(shielding.NCO),
		"NH2":  len(shielding.NH2),
	}).Info("loaded CO self-shielding table")

	return &Tables{Rates: rates, Species: species, Shielding: shielding}, nil
}
