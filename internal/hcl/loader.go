package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/config"
	"github.com/vk/chembatch/internal/ctxlog"
	"github.com/vk/chembatch/internal/fsutil"
)

// Loader implements config.Loader for HCL run-configuration files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under path, merges the blocks onto the
// documented defaults (later files override scalar settings, condition
// blocks accumulate) and validates the resulting model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to locate configuration: %w", err)
	}
	if len(filePaths) == 0 {
		return nil, fmt.Errorf("no .hcl configuration files found at %q", path)
	}
	logger.Debug("Found HCL files to load.", "files", filePaths)

	model := config.Default()
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", filePath, diags)
		}

		var fs fileSchema
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &fs); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
		}
		if err := l.apply(model, &fs); err != nil {
			return nil, fmt.Errorf("%s: %w", filePath, err)
		}
		logger.Debug("Loaded configuration file.", "file", filePath)
	}

	if err := model.Validate(); err != nil {
		return nil, err
	}
	logger.Info("Configuration loaded.", "engine", model.Engine, "conditions", len(model.Conditions))
	return model, nil
}

// apply merges one decoded file onto the model.
func (l *Loader) apply(m *config.Model, fs *fileSchema) error {
	if b := fs.Simulation; b != nil {
		m.Engine = b.Engine
		m.InitialCondition = b.InitialCondition
		setString(&m.Description, b.Description)
		setString(&m.EngineInput, b.EngineInput)
		setFloat(&m.TMin, b.TMin)
		setFloat(&m.TMax, b.TMax)
		setFloat(&m.Dt, b.Dt)
		if b.MaxSteps != nil {
			m.MaxSteps = *b.MaxSteps
		}
	}
	if b := fs.State; b != nil {
		setFloat(&m.WaterDensity, b.WaterDensity)
		setFloat(&m.Porosity, b.Porosity)
		setFloat(&m.Temperature, b.Temperature)
		setFloat(&m.AqueousPressure, b.AqueousPressure)
	}
	if b := fs.Material; b != nil {
		setFloat(&m.Volume, b.Volume)
		setFloat(&m.Saturation, b.Saturation)
		var err error
		if m.IsothermKd, err = namedValues("isotherm_kd", b.IsothermKd); err != nil {
			return err
		}
		if m.FreundlichN, err = namedValues("freundlich_n", b.FreundlichN); err != nil {
			return err
		}
		if m.LangmuirB, err = namedValues("langmuir_b", b.LangmuirB); err != nil {
			return err
		}
	}
	if b := fs.Sizes; b != nil {
		m.Sizes = chem.Sizes{
			NumPrimary:           b.Primary,
			NumSorbed:            b.Sorbed,
			NumMinerals:          b.Minerals,
			NumSurfaceSites:      b.SurfaceSites,
			NumIonExchangeSites:  b.IonExchangeSites,
			NumGases:             b.Gases,
			NumAqueousKinetics:   b.AqueousKinetics,
			NumMineralKinetics:   b.MineralKinetics,
			NumAuxiliaryIntegers: b.AuxiliaryIntegers,
			NumAuxiliaryDoubles:  b.AuxiliaryDoubles,
		}
	}
	for _, cb := range fs.Conditions {
		m.Conditions = append(m.Conditions, translateCondition(&cb))
	}
	if b := fs.Output; b != nil {
		setString(&m.Output.Type, b.Type)
		setString(&m.Output.File, b.File)
	}
	return nil
}

// translateCondition converts a decoded condition block into the record
// the driver seeds from.
func translateCondition(cb *conditionBlock) *chem.Condition {
	cond := chem.NewCondition(cb.Name, len(cb.Aqueous), len(cb.Minerals))
	for i, a := range cb.Aqueous {
		cond.Aqueous[i] = chem.AqueousConstraint{
			Species: a.Species,
			Type:    a.Type,
			Value:   a.Value,
		}
		if a.Associated != nil {
			cond.Aqueous[i].AssociatedSpecies = *a.Associated
		}
	}
	for i, mc := range cb.Minerals {
		cond.Minerals[i] = chem.MineralConstraint{
			Mineral:        mc.Mineral,
			VolumeFraction: mc.VolumeFraction,
		}
		if mc.SpecificSurfaceArea != nil {
			cond.Minerals[i].SpecificSurfaceArea = *mc.SpecificSurfaceArea
		}
	}
	return cond
}

// namedValues converts a decoded `param = { "Species" = number }` value
// into a name-to-value map.
func namedValues(field string, val *cty.Value) (map[string]float64, error) {
	if val == nil || val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s must be a map of species name to number, got %s", field, ty.FriendlyName())
	}
	out := make(map[string]float64, val.LengthInt())
	for name, v := range val.AsValueMap() {
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("%s[%q]: %w", field, name, err)
		}
		out[name] = f
	}
	return out, nil
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
