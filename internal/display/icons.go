package display

import (
	"strconv"
)

// IconHeight is the number of lines in every weather glyph.
const IconHeight = 5

// IconWidth is the visual width of every glyph line, escape codes excluded.
const IconWidth = 13

const (
	reset    = "\033[0m"
	yellow   = "\033[38;5;226m"
	white    = "\033[38;5;250m"
	darkGray = "\033[38;5;240m"
	blue     = "\033[38;5;111m"
	snow     = "\033[38;5;255m"
	bolt     = "\033[38;5;228;1m"
)

func paint(color, s string) string {
	return color + s + reset
}

// icons is keyed by condition group: the first two digits of the provider's icon id.
var icons = map[uint64][IconHeight]string{
	// clear sky
	1: {
		paint(yellow, `    \   /    `),
		paint(yellow, `     .-.     `),
		paint(yellow, `  - (   ) -  `),
		paint(yellow, "     `-'     "),
		paint(yellow, `    /   \    `),
	},
	// few clouds
	2: {
		paint(yellow, `   \  /      `),
		paint(yellow, ` _ /""`) + paint(white, `.-.    `),
		paint(yellow, `   \_`) + paint(white, `(   ).  `),
		paint(yellow, `   /`) + paint(white, `(___(__) `),
		`             `,
	},
	// scattered clouds
	3: {
		`             `,
		paint(white, `     .--.    `),
		paint(white, `  .-(    ).  `),
		paint(white, ` (___.__)__) `),
		`             `,
	},
	// broken / overcast clouds
	4: {
		`             `,
		paint(darkGray, `     .--.    `),
		paint(darkGray, `  .-(    ).  `),
		paint(darkGray, ` (___.__)__) `),
		`             `,
	},
	// shower rain
	9: {
		paint(yellow, ` _`+"`"+`/""`) + paint(white, `.-.    `),
		paint(yellow, `  ,\_`) + paint(white, `(   ).  `),
		paint(yellow, `   /`) + paint(white, `(___(__) `),
		paint(blue, `     ' ' ' ' `),
		paint(blue, `    ' ' ' '  `),
	},
	// rain
	10: {
		paint(white, `     .-.     `),
		paint(white, `    (   ).   `),
		paint(white, `   (___(__)  `),
		paint(blue, `   ' ' ' '   `),
		paint(blue, `  ' ' ' '    `),
	},
	// thunderstorm
	11: {
		paint(darkGray, `     .-.     `),
		paint(darkGray, `    (   ).   `),
		paint(darkGray, `   (___(__)  `),
		paint(bolt, `    /_ /_    `),
		paint(bolt, `     /  /    `),
	},
	// snow
	13: {
		paint(white, `     .-.     `),
		paint(white, `    (   ).   `),
		paint(white, `   (___(__)  `),
		paint(snow, `    *  *  *  `),
		paint(snow, `   *  *  *   `),
	},
	// mist
	50: {
		`             `,
		paint(white, ` _ - _ - _ - `),
		paint(white, `  _ - _ - _  `),
		paint(white, ` _ - _ - _ - `),
		`             `,
	},
}

// IconFor returns the glyph for a provider icon id such as "10d". Only the
// leading two characters are used, so day and night variants share a glyph.
func IconFor(iconID string) ([]string, bool) {
	if len(iconID) < 2 {
		return nil, false
	}
	group, err := strconv.ParseUint(iconID[:2], 10, 8)
	if err != nil {
		return nil, false
	}
	glyph, ok := icons[group]
	if !ok {
		return nil, false
	}
	return glyph[:], true
}
