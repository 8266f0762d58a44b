package api

// Document is the unified token document: an ordered set of categories,
// each an ordered set of tokens. Order is the insertion order of the source
// records and is preserved by every emitter.
type Document struct {
	Categories []Category `json:"categories"`
}

// Category groups tokens under a unique name (e.g. "lumiere", "spacing").
type Category struct {
	// Name of the category. Unique within a document.
	Name string `json:"name"`
	// Tokens in source order. Names are unique within the category.
	Tokens []Token `json:"tokens"`
}

// Token is a named design constant. Value is a CSS-legal literal
// (color hex, font stack, length with unit).
type Token struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Category returns the named category, or false if the document has none.
func (d *Document) Category(name string) (*Category, bool) {
	if d == nil {
		return nil, false
	}
	for i := range d.Categories {
		if d.Categories[i].Name == name {
			return &d.Categories[i], true
		}
	}
	return nil, false
}

// Names returns the category names in document order.
func (d *Document) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the value of a single token.
func (d *Document) Lookup(category, token string) (string, bool) {
	c, ok := d.Category(category)
	if !ok {
		return "", false
	}
	return c.Lookup(token)
}

// Map flattens the document into nested maps. Order is lost; use it for
// structural comparison only.
func (d *Document) Map() map[string]map[string]string {
	out := make(map[string]map[string]string)
	if d == nil {
		return out
	}
	for _, c := range d.Categories {
		out[c.Name] = c.Map()
	}
	return out
}

// Clone returns a deep copy so callers can mutate without affecting d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Categories: make([]Category, len(d.Categories))}
	for i, c := range d.Categories {
		out.Categories[i] = Category{
			Name:   c.Name,
			Tokens: append([]Token(nil), c.Tokens...),
		}
	}
	return out
}

// Lookup returns the value of the named token.
func (c *Category) Lookup(name string) (string, bool) {
	for _, t := range c.Tokens {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Map returns the category's tokens keyed by name.
func (c *Category) Map() map[string]string {
	m := make(map[string]string, len(c.Tokens))
	for _, t := range c.Tokens {
		m[t.Name] = t.Value
	}
	return m
}
