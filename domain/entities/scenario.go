package entities

// Scenario is a linear script that walks the app into one or more views
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// Mutating marks scenarios that change application state (cart, orders)
	Mutating bool   `json:"mutating,omitempty"`
	Steps    []Step `json:"steps"`
}

// Screenshots returns the file names the scenario writes, in order
func (s Scenario) Screenshots() []string {
	var files []string
	for _, step := range s.Steps {
		if step.Type == StepScreenshot {
			files = append(files, step.File)
		}
	}
	return files
}
