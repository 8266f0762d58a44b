package source

import "github.com/agentic-research/lumiere/api"

// Colors is the built-in color record (category "lumiere").
func Colors() Record {
	return Record{
		Origin: "builtin:colors",
		Categories: []api.Category{{
			Name: api.CategoryColors,
			Tokens: []api.Token{
				{Name: "navy", Value: "#1B1F3B"},
				{Name: "gold", Value: "#C9A96E"},
				{Name: "ivory", Value: "#FAF7F0"},
				{Name: "grey", Value: "#E8E6E1"},
				{Name: "burgundy", Value: "#6D1A36"},
			},
		}},
	}
}

// Typography is the built-in typography record (categories "fonts" and "fontSizes").
func Typography() Record {
	return Record{
		Origin: "builtin:typography",
		Categories: []api.Category{
			{
				Name: api.CategoryFonts,
				Tokens: []api.Token{
					{Name: "heading", Value: "Playfair Display, serif"},
					{Name: "body", Value: "Open Sans, sans-serif"},
					{Name: "accent", Value: "Open Sans, sans-serif"},
				},
			},
			{
				Name: api.CategoryFontSizes,
				Tokens: []api.Token{
					{Name: "xs", Value: "0.75rem"},
					{Name: "sm", Value: "0.875rem"},
					{Name: "base", Value: "1rem"},
					{Name: "lg", Value: "1.125rem"},
					{Name: "xl", Value: "1.25rem"},
					{Name: "2xl", Value: "1.5rem"},
					{Name: "3xl", Value: "1.875rem"},
					{Name: "4xl", Value: "2.25rem"},
				},
			},
		},
	}
}

// Spacing is the built-in spacing record.
func Spacing() Record {
	return Record{
		Origin: "builtin:spacing",
		Categories: []api.Category{{
			Name: api.CategorySpacing,
			Tokens: []api.Token{
				{Name: "xs", Value: "4px"},
				{Name: "sm", Value: "8px"},
				{Name: "md", Value: "16px"},
				{Name: "lg", Value: "24px"},
				{Name: "xl", Value: "32px"},
				{Name: "2xl", Value: "48px"},
				{Name: "3xl", Value: "64px"},
			},
		}},
	}
}

// Builtin returns the three fixed source records in merge order.
func Builtin() []Record {
	return []Record{Colors(), Typography(), Spacing()}
}
