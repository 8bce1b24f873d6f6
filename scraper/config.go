package scraper

// Config defines where recipe fields are looked for on a page and which
// boilerplate is stripped from the text found there. Selector lists are probed
// in order and their matches unioned.
type Config struct {
	TitleSelectors        []string    `json:"title_selectors" yaml:"title_selectors"`
	IngredientSelectors   []string    `json:"ingredient_selectors" yaml:"ingredient_selectors"`
	InstructionSelectors  []string    `json:"instruction_selectors" yaml:"instruction_selectors"`
	IngredientContainers  []string    `json:"ingredient_containers" yaml:"ingredient_containers"`
	InstructionContainers []string    `json:"instruction_containers" yaml:"instruction_containers"`
	Boilerplate           []CleanRule `json:"boilerplate" yaml:"boilerplate"`
}

// CleanRule is a case-insensitive regular expression and the text that
// replaces each match. An empty replacement deletes the match.
type CleanRule struct {
	Pattern     string `json:"pattern" yaml:"pattern"`
	Replacement string `json:"replacement" yaml:"replacement"`
}

// Label words guard the container fallback against capturing a section
// heading instead of its content.
var (
	IngredientLabels  = []string{"ingredient"}
	InstructionLabels = []string{"instruction", "direction"}
)

// DefaultConfig returns the built-in selector and boilerplate catalog.
func DefaultConfig() *Config {
	return &Config{
		TitleSelectors: []string{
			"h1",
			".recipe-title",
			".wprm-recipe-name",
			".tasty-recipes-title",
		},
		IngredientSelectors: []string{
			".ingredient",
			".ingredients-item",
			".recipe-ingredients li",
			"li[class*=ingredient]",
			".wprm-recipe-ingredient",
			".tasty-recipes-ingredients-body li",
			"ul.ingredients li",
			"ol.ingredients li",
			".recipe__ingredients li",
		},
		InstructionSelectors: []string{
			".instruction",
			".instructions-step",
			".recipe-instructions li",
			"p[class*=instruction]",
			"li[class*=instruction]",
			".wprm-recipe-instruction",
			".tasty-recipes-instructions-body li",
			"ol.instructions li",
			"ul.instructions li",
			".recipe__instructions li",
			".recipe-directions li",
			"div.recipe-method li",
			"section.recipe-method li",
		},
		IngredientContainers: []string{
			"#ingredients",
			"div.ingredients",
			"section.ingredients",
			".ingredients",
			"[class*=ingredients]",
		},
		InstructionContainers: []string{
			"#instructions",
			"div.instructions",
			"section.instructions",
			".instructions",
			"[class*=directions]",
			"[class*=instructions]",
			".recipe-method",
		},
		Boilerplate: DefaultBoilerplate(),
	}
}

// DefaultBoilerplate returns the ordered boilerplate catalog. Attribution
// rules run up to the next sentence boundary (taking the period with them) or
// line break.
func DefaultBoilerplate() []CleanRule {
	return []CleanRule{
		{Pattern: `[©®™℗℠]`},
		{Pattern: `(?-i:\b\((?:C|R|TM)\))`},
		{Pattern: `\b(?:photo(?:graph)?s?|images?|pictures?)\s*(?:by|credits?|courtesy(?:\s+of)?)\b\s*:?[^.\n]*\.?`},
		{Pattern: `\bphotograph(?:er|y)\s*(?:by\b\s*:?|:)[^.\n]*\.?`},
		{Pattern: `\b(?:food|prop)\s+styl(?:ing|ist)\s*(?:by\b)?\s*:?[^.\n]*\.?`},
		{Pattern: `\bcredits?\s*:[^.\n]*\.?`},
		{Pattern: `\bcourtesy\s+of\b[^.\n]*\.?`},
		{Pattern: `\bcopyright\b[^.\n]*\.?`},
		{Pattern: `\ball\s+rights\s+reserved\b\.?`},
		{Pattern: `\b(?:dotdash\s+)?meredith\s+food\s+studios\b`},
		{Pattern: `\b(?:allrecipes|bon\s+app[eé]tit|food\s*&\s*wine|taste\s+of\s+home)\s+magazine\b`},
	}
}

// Merge returns a copy of the config with the extra selectors and rules
// appended after the existing ones.
func (c *Config) Merge(extra *Config) *Config {
	merged := &Config{
		TitleSelectors:        append([]string(nil), c.TitleSelectors...),
		IngredientSelectors:   append([]string(nil), c.IngredientSelectors...),
		InstructionSelectors:  append([]string(nil), c.InstructionSelectors...),
		IngredientContainers:  append([]string(nil), c.IngredientContainers...),
		InstructionContainers: append([]string(nil), c.InstructionContainers...),
		Boilerplate:           append([]CleanRule(nil), c.Boilerplate...),
	}
	if extra == nil {
		return merged
	}

	merged.TitleSelectors = append(merged.TitleSelectors, extra.TitleSelectors...)
	merged.IngredientSelectors = append(merged.IngredientSelectors, extra.IngredientSelectors...)
	merged.InstructionSelectors = append(merged.InstructionSelectors, extra.InstructionSelectors...)
	merged.IngredientContainers = append(merged.IngredientContainers, extra.IngredientContainers...)
	merged.InstructionContainers = append(merged.InstructionContainers, extra.InstructionContainers...)
	merged.Boilerplate = append(merged.Boilerplate, extra.Boilerplate...)

	return merged
}
