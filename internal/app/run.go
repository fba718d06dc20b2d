package app

import (
	"context"
	"fmt"

	"github.com/vk/chembatch/internal/config"
	"github.com/vk/chembatch/internal/ctxlog"
	"github.com/vk/chembatch/internal/driver"
	"github.com/vk/chembatch/internal/output"
)

// paramsFromModel maps the loaded configuration onto driver parameters.
func paramsFromModel(m *config.Model) driver.Params {
	return driver.Params{
		TMin:            m.TMin,
		TMax:            m.TMax,
		Dt:              m.Dt,
		MaxSteps:        m.MaxSteps,
		EngineInput:     m.EngineInput,
		Volume:          m.Volume,
		Saturation:      m.Saturation,
		WaterDensity:    m.WaterDensity,
		Porosity:        m.Porosity,
		Temperature:     m.Temperature,
		AqueousPressure: m.AqueousPressure,
		IsothermKd:      m.IsothermKd,
		FreundlichN:     m.FreundlichN,
		LangmuirB:       m.LangmuirB,
	}
}

// Run executes the configured batch simulation. A failed run is not
// fatal: whatever history accumulated is still written to the configured
// sink before the failure is returned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	cond, err := a.model.Condition()
	if err != nil {
		return err
	}

	drv, err := driver.New(a.table, a.model.Sizes, cond, paramsFromModel(a.model))
	if err != nil {
		return err
	}
	defer drv.Release()

	a.logger.Info("Starting batch simulation.",
		"engine", a.model.Engine, "condition", cond.Name,
		"t_max", a.model.TMax, "dt", a.model.Dt, "max_steps", a.model.MaxSteps)

	runErr := drv.Run(ctx)

	names, flat := drv.HistoryTable(driver.TimeMajor)
	if writeErr := output.Write(ctx, a.model.Output, a.outW, names, flat); writeErr != nil {
		if runErr != nil {
			a.logger.Error("Failed to write partial history.", "error", writeErr)
			return fmt.Errorf("simulation failed (%w); additionally failed to write history: %v", runErr, writeErr)
		}
		return writeErr
	}

	if runErr != nil {
		return fmt.Errorf("simulation failed after %d steps (partial history of %d entries written): %w",
			drv.StepCount(), drv.History().Len(), runErr)
	}

	a.logger.Info("Batch simulation finished.",
		"steps", drv.StepCount(), "final_time", drv.Time(), "history_entries", drv.History().Len())
	return nil
}
