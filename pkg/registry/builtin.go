package registry

import "github.com/matzehuels/gridkit/pkg/component"

// builtinDefinitions is the default storefront palette.
var builtinDefinitions = []Definition{
	{
		Type:          "hero",
		Label:         "Hero banner",
		DefaultProps:  component.Props{"title": "New season", "subtitle": "", "cta": "Shop now", "image": ""},
		DefaultLayout: Size{W: 12, H: 4, MinW: 4, MinH: 2},
	},
	{
		Type:          "product-grid",
		Label:         "Product grid",
		DefaultProps:  component.Props{"collection": "", "limit": 8.0, "columns": 4.0},
		DefaultLayout: Size{W: 12, H: 6, MinW: 4, MinH: 3},
	},
	{
		Type:          "product-card",
		Label:         "Product card",
		DefaultProps:  component.Props{"product": "", "showPrice": true},
		DefaultLayout: Size{W: 3, H: 4, MinW: 2, MinH: 3},
	},
	{
		Type:          "text",
		Label:         "Rich text",
		DefaultProps:  component.Props{"html": "<p>Tell your story</p>"},
		DefaultLayout: Size{W: 6, H: 2, MinW: 2, MinH: 1},
	},
	{
		Type:          "image",
		Label:         "Image",
		DefaultProps:  component.Props{"src": "", "alt": ""},
		DefaultLayout: Size{W: 6, H: 3, MinW: 2, MinH: 1},
	},
	{
		Type:          "banner",
		Label:         "Announcement bar",
		DefaultProps:  component.Props{"message": "Free shipping over $50"},
		DefaultLayout: Size{W: 12, H: 1, MinW: 4, MinH: 1},
	},
	{
		Type:          "newsletter",
		Label:         "Newsletter signup",
		DefaultProps:  component.Props{"heading": "Stay in the loop", "button": "Subscribe"},
		DefaultLayout: Size{W: 6, H: 2, MinW: 3, MinH: 2},
	},
	{
		Type:          "spacer",
		Label:         "Spacer",
		DefaultProps:  component.Props{},
		DefaultLayout: Size{W: 12, H: 1, MinW: 1, MinH: 1},
	},
}

// Builtin returns the default storefront palette.
func Builtin() *Static {
	s, err := NewStatic(builtinDefinitions...)
	if err != nil {
		panic("registry: invalid builtin palette: " + err.Error())
	}
	return s
}
