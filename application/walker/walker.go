package walker

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"pos_snapshots/domain/entities"
	"pos_snapshots/domain/interfaces"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

// Walker runs scripted scenarios, one browser session per scenario
type Walker struct {
	launcher interfaces.BrowserLauncher
	store    interfaces.ScreenshotStore
	guard    interfaces.TargetGuard
	logger   *logrus.Logger
	out      io.Writer
	baseURL  string
	session  entities.SessionOptions
}

// Options holds the walker dependencies
type Options struct {
	Launcher interfaces.BrowserLauncher
	Store    interfaces.ScreenshotStore
	Guard    interfaces.TargetGuard
	Logger   *logrus.Logger
	Out      io.Writer
	BaseURL  string
	Session  entities.SessionOptions
}

// NewWalker - creates new walker instance
func NewWalker(opts Options) *Walker {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Walker{
		launcher: opts.Launcher,
		store:    opts.Store,
		guard:    opts.Guard,
		logger:   logger,
		out:      out,
		baseURL:  opts.BaseURL,
		session:  opts.Session,
	}
}

// run tracks the state machine of one scenario
type run struct {
	result *entities.RunResult
	logger *logrus.Entry
}

func (r *run) transition(state entities.RunState) {
	if r.result.State == state {
		return
	}
	r.logger.Debugf("state %s -> %s", r.result.State, state)
	r.result.State = state
	r.result.Transitions = append(r.result.Transitions, state)
}

// Run - executes scenario in a fresh browser session.
//
// The session is always closed, including when a step fails. The returned
// result is never nil and ends in RunStateClosed or RunStateAborted.
func (w *Walker) Run(ctx context.Context, scenario entities.Scenario) (result *entities.RunResult, err error) {
	r := &run{
		result: &entities.RunResult{Scenario: scenario.Name},
		logger: w.logger.WithField("scenario", scenario.Name),
	}
	defer func() {
		if err != nil {
			r.transition(entities.RunStateAborted)
		}
	}()

	if w.guard != nil {
		if err := w.guard.CheckScenario(ctx, w.baseURL, scenario); err != nil {
			return r.result, err
		}
	}

	r.logger.Info("Starting scenario")

	browser, err := w.launcher.Launch(ctx, w.session)
	if err != nil {
		return r.result, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	r.transition(entities.RunStateLaunched)

	defer func() {
		if closeErr := browser.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to close browser: %w", closeErr))
		}
		if err == nil {
			r.transition(entities.RunStateClosed)
		}
	}()

	for i, step := range scenario.Steps {
		select {
		case <-ctx.Done():
			return r.result, fmt.Errorf("scenario %s canceled: %w", scenario.Name, ctx.Err())
		default:
		}

		if err := w.execute(ctx, r, browser, step); err != nil {
			return r.result, &entities.StepError{
				Scenario: scenario.Name,
				Index:    i,
				Step:     step,
				Err:      err,
			}
		}
	}

	r.logger.WithField("screenshots", len(r.result.Screenshots)).Info("Scenario complete")
	return r.result, nil
}

// execute - runs a single step and advances the run state
func (w *Walker) execute(ctx context.Context, r *run, browser interfaces.Browser, step entities.Step) error {
	r.logger.Debugf("Step: %s", step.Description)

	switch step.Type {
	case entities.StepNavigate:
		target, err := resolveURL(w.baseURL, step.Path)
		if err != nil {
			return err
		}
		if err := browser.Navigate(ctx, target); err != nil {
			return err
		}
		r.transition(entities.RunStateNavigated)

	case entities.StepWaitVisible, entities.StepWaitHidden:
		waitingForReady := r.result.State == entities.RunStateNavigated
		if waitingForReady {
			r.transition(entities.RunStateWaitingForReady)
		}

		var err error
		if step.Type == entities.StepWaitVisible {
			err = browser.WaitVisible(ctx, step.Target)
		} else {
			err = browser.WaitHidden(ctx, step.Target)
		}
		if err != nil {
			return err
		}

		if waitingForReady {
			r.transition(entities.RunStateReady)
		}

	case entities.StepClick:
		r.transition(entities.RunStateInteracting)
		return browser.Click(ctx, step.Target, step.Scope)

	case entities.StepSettle:
		r.transition(entities.RunStateInteracting)
		return browser.Settle(ctx, step.Pause)

	case entities.StepScreenshot:
		data, err := browser.Screenshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to capture %s: %w", step.Label, err)
		}
		path, err := w.store.Save(step.File, data)
		if err != nil {
			return err
		}
		r.result.Screenshots = append(r.result.Screenshots, path)
		r.transition(entities.RunStateCaptured)

		r.logger.WithField("path", path).Infof("Captured %s", step.Label)
		fmt.Fprintf(w.out, "Screenshot saved for %s: %s\n", step.Label, path)

	default:
		return fmt.Errorf("unknown step type: %s", step.Type)
	}

	return nil
}

// RunAll - runs scenarios one after another and stops at the first failure
func (w *Walker) RunAll(ctx context.Context, scenarios []entities.Scenario) ([]*entities.RunResult, error) {
	results := make([]*entities.RunResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		result, err := w.Run(ctx, scenario)
		results = append(results, result)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// resolveURL - joins path onto base, keeping base when path is empty
func resolveURL(base, path string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", base, err)
	}
	if path == "" {
		return baseURL.String(), nil
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return baseURL.ResolveReference(ref).String(), nil
}
