// Package scenarios holds the scripted walks through the POS app.
//
// Selector text is the Spanish copy rendered by the app; any copy change in
// the app must be mirrored here.
package scenarios

import (
	"fmt"
	"sort"

	"pos_snapshots/domain/entities"
)

const (
	ProductCatalog = "product-catalog"
	SlideOutCart   = "slide-out-cart"
	SlideOutMenu   = "slide-out-menu"
	AllViews       = "all-views"
)

// Landmarks and controls exposed by the app
var (
	loadingIndicator = entities.ByText("Iniciando Sistema...")
	posLandmark      = entities.ByText("Todos")

	menuButton = entities.ByAriaLabel("button", "Open menu")

	// XPath mirrors the CSS for the selenium driver
	menuPanel = entities.ByCSS("div:has(> div > h2:has-text('Menu'))").WithXPath("//div[div/h2[contains(normalize-space(.), 'Menu')]]")

	orderButton = entities.ButtonWithText("TU PEDIDO")
)

// Ready returns the steps that wait for the app to finish booting
func Ready() []entities.Step {
	return []entities.Step{
		entities.WaitHidden(loadingIndicator),
		entities.WaitVisible(posLandmark),
	}
}

// openMenuTo opens the slide-out menu and picks destination
func openMenuTo(destination string) []entities.Step {
	return []entities.Step{
		entities.Click(menuButton),
		entities.Settle(),
		entities.ClickWithin(menuPanel, entities.ButtonWithText(destination)),
	}
}

func productCatalog() entities.Scenario {
	steps := []entities.Step{entities.Navigate("")}
	steps = append(steps, Ready()...)
	steps = append(steps, entities.Screenshot("product_catalog_mobile.png", "Product Catalog"))

	return entities.Scenario{
		Name:        ProductCatalog,
		Description: "order view product catalog at mobile width",
		Steps:       steps,
	}
}

func slideOutCart() entities.Scenario {
	steps := []entities.Step{entities.Navigate("")}
	steps = append(steps, Ready()...)
	steps = append(steps,
		entities.Click(entities.ByText("Hamburguesa Clásica")),
		entities.Click(entities.ByText("Papas Fritas XL")),
		entities.WaitVisible(orderButton),
		entities.Click(orderButton),
		entities.Settle(),
		entities.WaitVisible(entities.ByText("Tu Pedido")),
		entities.WaitVisible(entities.ByText("2 ITEMS")),
		entities.Screenshot("slide_out_cart_mobile.png", "Slide-Out Cart"),
	)

	return entities.Scenario{
		Name:        SlideOutCart,
		Description: "cart panel with two items slid in",
		Mutating:    true,
		Steps:       steps,
	}
}

func slideOutMenu() entities.Scenario {
	steps := []entities.Step{entities.Navigate("")}
	steps = append(steps, Ready()...)
	steps = append(steps,
		entities.Click(menuButton),
		entities.Settle(),
		entities.WaitVisible(menuPanel),
		entities.Screenshot("slide_out_menu_mobile.png", "Slide-Out Menu"),
	)

	return entities.Scenario{
		Name:        SlideOutMenu,
		Description: "navigation menu slid in",
		Steps:       steps,
	}
}

func allViews() entities.Scenario {
	steps := []entities.Step{entities.Navigate("")}
	steps = append(steps, Ready()...)
	steps = append(steps, entities.Screenshot("responsive_pos_view.png", "POS View"))

	// Empty kitchen first, then back to the order view to place a sale
	steps = append(steps, openMenuTo("Cocina")...)
	steps = append(steps,
		entities.WaitVisible(entities.ByText("Sin Órdenes Pendientes")),
		entities.WaitHidden(posLandmark),
	)
	steps = append(steps, openMenuTo("Venta")...)
	steps = append(steps,
		entities.Click(entities.ByText("Hamburguesa Clásica")),
		entities.Click(orderButton),
		entities.Click(entities.ButtonWithText("COBRAR")),
		entities.Click(entities.ButtonWithText("FINALIZAR COBRO")),
		entities.WaitVisible(entities.ByText("EN PREPARACIÓN")),
		entities.Screenshot("responsive_dispatch_view.png", "Dispatch View"),
	)

	steps = append(steps, openMenuTo("Historial")...)
	steps = append(steps,
		entities.WaitVisible(entities.ByText("Registro de Movimientos")),
		entities.WaitHidden(entities.ByText("EN PREPARACIÓN")),
		entities.Screenshot("responsive_history_view.png", "History View"),
	)

	steps = append(steps, openMenuTo("Config")...)
	steps = append(steps,
		entities.WaitVisible(entities.ByText("Menú de Ventas")),
		entities.WaitHidden(entities.ByText("Registro de Movimientos")),
		entities.Screenshot("responsive_product_management_view.png", "Product Management View"),

		entities.Click(entities.ByText("Categorías")),
		entities.WaitVisible(entities.ByPlaceholder("Nueva categoría...")),
		entities.Screenshot("responsive_categories_view.png", "Categories View"),

		entities.Click(entities.ByText("General")),
		entities.WaitVisible(entities.ByText("Ajustes del Negocio")),
		entities.Screenshot("responsive_general_settings_view.png", "General Settings View"),
	)

	return entities.Scenario{
		Name:        AllViews,
		Description: "every view at mobile width, including a completed sale in the kitchen",
		Mutating:    true,
		Steps:       steps,
	}
}

// All returns every scenario in run order
func All() []entities.Scenario {
	return []entities.Scenario{
		productCatalog(),
		slideOutCart(),
		slideOutMenu(),
		allViews(),
	}
}

// Names returns the sorted scenario names
func Names() []string {
	all := All()
	names := make([]string, 0, len(all))
	for _, sc := range all {
		names = append(names, sc.Name)
	}
	sort.Strings(names)
	return names
}

// Lookup finds scenarios by name, keeping the requested order.
// An empty list selects every scenario.
func Lookup(names ...string) ([]entities.Scenario, error) {
	all := All()
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]entities.Scenario, len(all))
	for _, sc := range all {
		byName[sc.Name] = sc
	}

	selected := make([]entities.Scenario, 0, len(names))
	for _, name := range names {
		sc, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown scenario %q (available: %v)", name, Names())
		}
		selected = append(selected, sc)
	}
	return selected, nil
}
