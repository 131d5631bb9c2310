package scenarios

import (
	"strings"
	"testing"

	"pos_snapshots/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryScenarioNavigatesThenWaitsForReady(t *testing.T) {
	ready := Ready()
	for _, sc := range All() {
		t.Run(sc.Name, func(t *testing.T) {
			require.Greater(t, len(sc.Steps), len(ready)+1)
			assert.Equal(t, entities.StepNavigate, sc.Steps[0].Type)
			assert.Equal(t, ready, sc.Steps[1:1+len(ready)])
			assert.NotEmpty(t, sc.Screenshots())
		})
	}
}

func TestScreenshotFilesAreUniquePNGs(t *testing.T) {
	seen := map[string]string{}
	for _, sc := range All() {
		for _, file := range sc.Screenshots() {
			assert.True(t, strings.HasSuffix(file, ".png"), file)
			assert.NotContains(t, file, "/")
			if owner, dup := seen[file]; dup {
				t.Errorf("%s written by both %s and %s", file, owner, sc.Name)
			}
			seen[file] = sc.Name
		}
	}
	assert.Len(t, seen, 9)
}

func TestSettleFollowsAnimatedClicks(t *testing.T) {
	for _, sc := range All() {
		for i, step := range sc.Steps {
			if step.Type != entities.StepClick {
				continue
			}
			if step.Target == menuButton || step.Target == orderButton && sc.Name == SlideOutCart {
				require.Less(t, i+1, len(sc.Steps))
				assert.Equal(t, entities.StepSettle, sc.Steps[i+1].Type, "%s step %d", sc.Name, i)
			}
		}
	}
}

func TestCartWaitsForTwoItemsBeforeCapture(t *testing.T) {
	sc, err := Lookup(SlideOutCart)
	require.NoError(t, err)
	steps := sc[0].Steps

	items := indexOfWait(steps, entities.ByText("2 ITEMS"))
	shot := indexOfType(steps, entities.StepScreenshot)
	require.NotEqual(t, -1, items)
	assert.Less(t, items, shot)
	assert.True(t, sc[0].Mutating)
}

func TestDispatchCaptureFollowsSale(t *testing.T) {
	sc, err := Lookup(AllViews)
	require.NoError(t, err)
	steps := sc[0].Steps

	finalize := -1
	for i, step := range steps {
		if step.Type == entities.StepClick && step.Target.HasText == "FINALIZAR COBRO" {
			finalize = i
		}
	}
	inPrep := indexOfWait(steps, entities.ByText("EN PREPARACIÓN"))
	dispatchShot := -1
	for i, step := range steps {
		if step.File == "responsive_dispatch_view.png" {
			dispatchShot = i
		}
	}

	require.NotEqual(t, -1, finalize)
	assert.Less(t, finalize, inPrep)
	assert.Less(t, inPrep, dispatchShot)
}

func TestMenuDestinationsWaitForOwnLandmarkOnly(t *testing.T) {
	sc, err := Lookup(AllViews)
	require.NoError(t, err)
	steps := sc[0].Steps

	destinations := map[string]struct {
		landmark string
		excluded string
	}{
		"Cocina":    {"Sin Órdenes Pendientes", "Todos"},
		"Historial": {"Registro de Movimientos", "EN PREPARACIÓN"},
		"Config":    {"Menú de Ventas", "Registro de Movimientos"},
	}

	for i, step := range steps {
		if step.Scope == nil {
			continue
		}
		want, ok := destinations[step.Target.HasText]
		if !ok {
			continue
		}
		require.Less(t, i+2, len(steps))
		assert.Equal(t, entities.WaitVisible(entities.ByText(want.landmark)), steps[i+1])
		assert.Equal(t, entities.WaitHidden(entities.ByText(want.excluded)), steps[i+2])
		delete(destinations, step.Target.HasText)
	}
	assert.Empty(t, destinations)
}

func TestMenuPanelHasSeleniumFallback(t *testing.T) {
	assert.NotEmpty(t, menuPanel.XPath)
	assert.NotEmpty(t, menuPanel.CSS)
}

func TestLookup(t *testing.T) {
	all, err := Lookup()
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, ProductCatalog, all[0].Name)

	picked, err := Lookup(AllViews, SlideOutMenu)
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, AllViews, picked[0].Name)
	assert.Equal(t, SlideOutMenu, picked[1].Name)

	_, err = Lookup("checkout")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{AllViews, ProductCatalog, SlideOutCart, SlideOutMenu}, Names())
}

func indexOfWait(steps []entities.Step, target entities.Selector) int {
	for i, step := range steps {
		if step.Type == entities.StepWaitVisible && step.Target == target {
			return i
		}
	}
	return -1
}

func indexOfType(steps []entities.Step, stepType entities.StepType) int {
	for i, step := range steps {
		if step.Type == stepType {
			return i
		}
	}
	return -1
}
