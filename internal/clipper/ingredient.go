package clipper

import (
	"regexp"
	"strings"

	"meal-planner/internal/shopping"
)

var knownUnits = map[string]bool{
	"g": true, "kg": true, "mg": true,
	"ml": true, "cl": true, "dl": true, "l": true,
	"el": true, "tl": true, "msp": true, "msp.": true,
	"prise": true, "prisen": true, "bund": true,
	"dose": true, "dosen": true, "becher": true,
	"packung": true, "pck": true, "pck.": true, "päckchen": true,
	"zehe": true, "zehen": true, "stück": true, "stk": true, "stk.": true,
	"scheibe": true, "scheiben": true, "tasse": true, "tassen": true,
	"handvoll": true, "glas": true, "zweig": true, "zweige": true,
	"cup": true, "cups": true, "tbsp": true, "tsp": true,
	"oz": true, "lb": true, "lbs": true,
}

var fractions = strings.NewReplacer("½", "1/2", "¼", "1/4", "¾", "3/4", "⅓", "1/3", "⅔", "2/3")

// amountPattern matches a leading quantity such as "2", "0,5", "1/2" or
// "1-2", optionally glued to a unit ("200g").
var amountPattern = regexp.MustCompile(`^(\d+(?:[.,]\d+)?(?:\s*[-/]\s*\d+(?:[.,]\d+)?)?)(\S*)`)

// ParseIngredientLine splits "500 g Spaghetti" into amount, unit and name.
// Lines without a leading quantity become a bare name. Empty lines report false.
func ParseIngredientLine(line string) (shopping.Ingredient, bool) {
	line = strings.Join(strings.Fields(fractions.Replace(line)), " ")
	if line == "" {
		return shopping.Ingredient{}, false
	}

	m := amountPattern.FindStringSubmatch(line)
	if m == nil {
		return shopping.Ingredient{Name: line}, true
	}

	ing := shopping.Ingredient{Amount: strings.ReplaceAll(m[1], " ", "")}
	rest := strings.TrimSpace(line[len(m[0]):])

	switch {
	case m[2] != "" && knownUnits[strings.ToLower(m[2])]:
		ing.Unit = m[2]
	case m[2] != "":
		// "3x" or "2er": keep the suffix with the name
		rest = strings.TrimSpace(m[2] + " " + rest)
	default:
		if word, tail, _ := strings.Cut(rest, " "); knownUnits[strings.ToLower(word)] && tail != "" {
			ing.Unit = word
			rest = tail
		}
	}

	ing.Name = strings.TrimSpace(rest)
	if ing.Name == "" {
		return shopping.Ingredient{Name: line}, true
	}
	return ing, true
}
