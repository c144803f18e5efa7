package docgrid

import (
	"context"

	"github.com/colonyops/docgrid/internal/core/doctor"
	"github.com/colonyops/docgrid/internal/data/stores"
)

// DoctorService runs health checks on the docgrid setup.
type DoctorService struct {
	app *App
}

// NewDoctorService creates a new DoctorService.
func NewDoctorService(app *App) *DoctorService {
	return &DoctorService{app: app}
}

// RunChecks executes all doctor checks and returns results.
func (d *DoctorService) RunChecks(ctx context.Context, configPath string, autofix bool) []doctor.Result {
	checks := []doctor.Check{
		doctor.NewConfigCheck(d.app.Config, configPath),
	}

	if d.app.DB != nil {
		var sweeper doctor.Sweeper
		if s, ok := d.app.KV.(*stores.KVStore); ok {
			sweeper = s
		}
		checks = append(checks, doctor.NewStorageCheck(d.app.DB.Conn(), sweeper, autofix))
	}

	checks = append(checks, doctor.NewCredentialCheck(d.app.Auth, autofix))

	if client, err := d.app.Client(); err == nil {
		checks = append(checks, doctor.NewAPICheck(client, d.app.Config.API.BaseURL, d.app.Config.API.Timeout))
	}

	return doctor.RunAll(ctx, checks)
}
