package entities

import "time"

// StepType represents the kind of interaction a walker step performs
type StepType string

const (
	StepNavigate    StepType = "navigate"
	StepWaitVisible StepType = "wait_visible"
	StepWaitHidden  StepType = "wait_hidden"
	StepClick       StepType = "click"
	StepSettle      StepType = "settle"
	StepScreenshot  StepType = "screenshot"
)

// DefaultSettlePause is the fixed pause used when animations cannot be observed
const DefaultSettlePause = 500 * time.Millisecond

// Step represents a single scripted interaction
type Step struct {
	Type        StepType      `json:"type"`
	Target      Selector      `json:"target,omitempty"`
	Scope       *Selector     `json:"scope,omitempty"`
	Path        string        `json:"path,omitempty"`
	File        string        `json:"file,omitempty"`
	Label       string        `json:"label,omitempty"`
	Pause       time.Duration `json:"pause,omitempty"`
	Description string        `json:"description"`
}

// Navigate - step loading path relative to the base URL
func Navigate(path string) Step {
	return Step{Type: StepNavigate, Path: path, Description: "navigate to " + displayPath(path)}
}

// WaitVisible - step blocking until target is visible
func WaitVisible(target Selector) Step {
	return Step{Type: StepWaitVisible, Target: target, Description: "wait for " + target.String()}
}

// WaitHidden - step blocking until target is hidden or detached
func WaitHidden(target Selector) Step {
	return Step{Type: StepWaitHidden, Target: target, Description: "wait until " + target.String() + " is gone"}
}

// Click - step clicking the first element matching target
func Click(target Selector) Step {
	return Step{Type: StepClick, Target: target, Description: "click " + target.String()}
}

// ClickWithin - step clicking target inside the sub-tree matched by scope
func ClickWithin(scope, target Selector) Step {
	return Step{Type: StepClick, Target: target, Scope: &scope, Description: "click " + target.String() + " within " + scope.String()}
}

// Settle - step waiting for running transitions to finish
func Settle() Step {
	return Step{Type: StepSettle, Pause: DefaultSettlePause, Description: "wait for animations to settle"}
}

// Screenshot - step capturing the page into file
func Screenshot(file, label string) Step {
	return Step{Type: StepScreenshot, File: file, Label: label, Description: "capture " + label}
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
