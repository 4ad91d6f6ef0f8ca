package scatter

// Tableau10 is the qualitative palette used for categories.
var Tableau10 = []string{
	"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f",
	"#edc949", "#af7aa1", "#ff9da7", "#9c755f", "#bab0ab",
}

// ColorScale is an ordinal scale from category to palette color. Colors are
// assigned in domain order and cycle when the domain outgrows the palette.
// Looking up an unknown value appends it to the domain.
type ColorScale struct {
	palette []string
	domain  []string
	index   map[string]int
}

// NewColorScale builds a scale over domain. A nil palette means Tableau10.
func NewColorScale(domain, palette []string) *ColorScale {
	if len(palette) == 0 {
		palette = Tableau10
	}
	c := &ColorScale{palette: palette, index: make(map[string]int, len(domain))}
	for _, d := range domain {
		c.add(d)
	}
	return c
}

func (c *ColorScale) add(v string) int {
	if i, ok := c.index[v]; ok {
		return i
	}
	i := len(c.domain)
	c.domain = append(c.domain, v)
	c.index[v] = i
	return i
}

// Color returns the palette color for v.
func (c *ColorScale) Color(v string) string {
	return c.palette[c.add(v)%len(c.palette)]
}

// Domain returns the categories seen so far, in assignment order.
func (c *ColorScale) Domain() []string {
	return append([]string(nil), c.domain...)
}
