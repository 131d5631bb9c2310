package interfaces

import (
	"context"

	"pos_snapshots/domain/entities"
)

// TargetGuard decides whether a scenario may run against a target
type TargetGuard interface {
	// CheckScenario returns an error when scenario must not run against baseURL
	CheckScenario(ctx context.Context, baseURL string, scenario entities.Scenario) error

	// IsMutating reports whether the scenario changes application state
	IsMutating(scenario entities.Scenario) bool
}
