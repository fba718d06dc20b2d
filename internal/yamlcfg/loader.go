// Package yamlcfg provides the YAML implementation of the configuration
// Loader interface, mirroring the HCL loader's block structure with YAML
// mappings.
package yamlcfg

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/config"
	"github.com/vk/chembatch/internal/ctxlog"
	"github.com/vk/chembatch/internal/fsutil"
)

// document is the YAML layout of one run-configuration file. Pointer
// members distinguish "absent, use the default" from explicit zeros.
type document struct {
	Simulation *struct {
		Description      *string  `yaml:"description"`
		Engine           string   `yaml:"engine"`
		EngineInput      *string  `yaml:"engine_input"`
		TMin             *float64 `yaml:"t_min"`
		TMax             *float64 `yaml:"t_max"`
		Dt               *float64 `yaml:"dt"`
		MaxSteps         *int     `yaml:"max_steps"`
		InitialCondition string   `yaml:"initial_condition"`
	} `yaml:"simulation"`

	State *struct {
		WaterDensity    *float64 `yaml:"water_density"`
		Porosity        *float64 `yaml:"porosity"`
		Temperature     *float64 `yaml:"temperature"`
		AqueousPressure *float64 `yaml:"aqueous_pressure"`
	} `yaml:"state"`

	Material *struct {
		Volume      *float64           `yaml:"volume"`
		Saturation  *float64           `yaml:"saturation"`
		IsothermKd  map[string]float64 `yaml:"isotherm_kd"`
		FreundlichN map[string]float64 `yaml:"freundlich_n"`
		LangmuirB   map[string]float64 `yaml:"langmuir_b"`
	} `yaml:"material"`

	Sizes *struct {
		Primary           int `yaml:"primary"`
		Sorbed            int `yaml:"sorbed"`
		Minerals          int `yaml:"minerals"`
		SurfaceSites      int `yaml:"surface_sites"`
		IonExchangeSites  int `yaml:"ion_exchange_sites"`
		Gases             int `yaml:"gases"`
		AqueousKinetics   int `yaml:"aqueous_kinetics"`
		MineralKinetics   int `yaml:"mineral_kinetics"`
		AuxiliaryIntegers int `yaml:"auxiliary_integers"`
		AuxiliaryDoubles  int `yaml:"auxiliary_doubles"`
	} `yaml:"sizes"`

	Conditions []struct {
		Name    string `yaml:"name"`
		Aqueous []struct {
			Species    string  `yaml:"species"`
			Type       string  `yaml:"type"`
			Associated string  `yaml:"associated"`
			Value      float64 `yaml:"value"`
		} `yaml:"aqueous"`
		Minerals []struct {
			Mineral             string  `yaml:"mineral"`
			VolumeFraction      float64 `yaml:"volume_fraction"`
			SpecificSurfaceArea float64 `yaml:"specific_surface_area"`
		} `yaml:"minerals"`
	} `yaml:"conditions"`

	Output *struct {
		Type *string `yaml:"type"`
		File *string `yaml:"file"`
	} `yaml:"output"`
}

// Loader implements config.Loader for YAML run-configuration files.
type Loader struct{}

// NewLoader creates a new YAML loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .yaml/.yml file under path, merges the documents
// onto the documented defaults and validates the resulting model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
	if err != nil {
		return nil, fmt.Errorf("failed to locate configuration: %w", err)
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .yaml configuration files found at %q", path)
	}

	model := config.Default()
	for _, filePath := range filePaths {
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filePath, err)
		}
		var doc document
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", filePath, err)
		}
		apply(model, &doc)
		logger.Debug("Loaded configuration file.", "file", filePath)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Configuration loaded.", "engine", model.Engine, "conditions", len(model.Conditions))
	return model, nil
}

func apply(m *config.Model, doc *document) {
	if s := doc.Simulation; s != nil {
		m.Engine = s.Engine
		m.InitialCondition = s.InitialCondition
		setString(&m.Description, s.Description)
		setString(&m.EngineInput, s.EngineInput)
		setFloat(&m.TMin, s.TMin)
		setFloat(&m.TMax, s.TMax)
		setFloat(&m.Dt, s.Dt)
		if s.MaxSteps != nil {
			m.MaxSteps = *s.MaxSteps
		}
	}
	if s := doc.State; s != nil {
		setFloat(&m.WaterDensity, s.WaterDensity)
		setFloat(&m.Porosity, s.Porosity)
		setFloat(&m.Temperature, s.Temperature)
		setFloat(&m.AqueousPressure, s.AqueousPressure)
	}
	if s := doc.Material; s != nil {
		setFloat(&m.Volume, s.Volume)
		setFloat(&m.Saturation, s.Saturation)
		if s.IsothermKd != nil {
			m.IsothermKd = s.IsothermKd
		}
		if s.FreundlichN != nil {
			m.FreundlichN = s.FreundlichN
		}
		if s.LangmuirB != nil {
			m.LangmuirB = s.LangmuirB
		}
	}
	if s := doc.Sizes; s != nil {
		m.Sizes = chem.Sizes{
			NumPrimary:           s.Primary,
			NumSorbed:            s.Sorbed,
			NumMinerals:          s.Minerals,
			NumSurfaceSites:      s.SurfaceSites,
			NumIonExchangeSites:  s.IonExchangeSites,
			NumGases:             s.Gases,
			NumAqueousKinetics:   s.AqueousKinetics,
			NumMineralKinetics:   s.MineralKinetics,
			NumAuxiliaryIntegers: s.AuxiliaryIntegers,
			NumAuxiliaryDoubles:  s.AuxiliaryDoubles,
		}
	}
	for _, cd := range doc.Conditions {
		cond := chem.NewCondition(cd.Name, len(cd.Aqueous), len(cd.Minerals))
		for i, a := range cd.Aqueous {
			cond.Aqueous[i] = chem.AqueousConstraint{
				Species:           a.Species,
				Type:              a.Type,
				AssociatedSpecies: a.Associated,
				Value:             a.Value,
			}
		}
		for i, mc := range cd.Minerals {
			cond.Minerals[i] = chem.MineralConstraint{
				Mineral:             mc.Mineral,
				VolumeFraction:      mc.VolumeFraction,
				SpecificSurfaceArea: mc.SpecificSurfaceArea,
			}
		}
		m.Conditions = append(m.Conditions, cond)
	}
	if s := doc.Output; s != nil {
		setString(&m.Output.Type, s.Type)
		setString(&m.Output.File, s.File)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
