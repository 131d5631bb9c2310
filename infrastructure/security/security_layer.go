package security

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"

	"pos_snapshots/domain/entities"
	"pos_snapshots/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Click labels that record sales or delete data in the POS app
var stateChangingKeywords = []string{
	"cobrar", "finalizar", "eliminar", "borrar",
	"restaurar", "vaciar", "guardar",
	"delete", "remove", "clear", "reset",
}

type SecurityLayer struct {
	logger      *logrus.Logger
	allowRemote bool
}

func NewSecurityLayer(logger *logrus.Logger, allowRemote bool) *SecurityLayer {
	return &SecurityLayer{
		logger:      logger,
		allowRemote: allowRemote,
	}
}

// CheckScenario refuses state-changing scenarios against hosts other than loopback
func (s *SecurityLayer) CheckScenario(ctx context.Context, baseURL string, scenario entities.Scenario) error {
	if !s.IsMutating(scenario) {
		return nil
	}

	local, err := IsLocalTarget(baseURL)
	if err != nil {
		return err
	}
	if local {
		return nil
	}

	if s.allowRemote {
		s.logger.WithFields(logrus.Fields{
			"scenario": scenario.Name,
			"target":   baseURL,
		}).Warn("Running state-changing scenario against a non-local target")
		return nil
	}

	return fmt.Errorf("scenario %s changes application state and %s is not a local target (set allow_remote to override)", scenario.Name, baseURL)
}

// IsMutating reports whether the scenario is flagged or clicks a state-changing control
func (s *SecurityLayer) IsMutating(scenario entities.Scenario) bool {
	if scenario.Mutating {
		return true
	}
	for _, step := range scenario.Steps {
		if s.IsStateChangingStep(step) {
			return true
		}
	}
	return false
}

// IsStateChangingStep checks click steps against known state-changing labels
func (s *SecurityLayer) IsStateChangingStep(step entities.Step) bool {
	if step.Type != entities.StepClick {
		return false
	}

	lowerTarget := strings.ToLower(step.Target.Text + " " + step.Target.HasText + " " + step.Target.CSS)
	for _, keyword := range stateChangingKeywords {
		if strings.Contains(lowerTarget, keyword) {
			return true
		}
	}
	return false
}

// IsLocalTarget reports whether rawURL points at the local machine
func IsLocalTarget(rawURL string) (bool, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("invalid target URL %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false, fmt.Errorf("target URL %q has no host", rawURL)
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true, nil
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback(), nil
	}
	return false, nil
}

// Ensure SecurityLayer implements TargetGuard interface
var _ interfaces.TargetGuard = (*SecurityLayer)(nil)
