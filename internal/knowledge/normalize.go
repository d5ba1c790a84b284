package knowledge

import "strings"

// asciiNormalizer maps typographic Unicode characters that break downstream
// CSV consumers to ASCII equivalents. The set matches what pasted
// documentation most often carries: smart quotes, dashes, odd spaces,
// trademark and currency symbols.
var asciiNormalizer = strings.NewReplacer(
	"®", "(R)",
	"™", "(TM)",
	"©", "(C)",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"′", "'",
	"″", `"`,
	"–", "-",
	"—", "-",
	"−", "-",
	"‐", "-",
	"‑", "-",
	" ", " ",
	" ", " ",
	" ", " ",
	" ", " ",
	"•", "*",
	"…", "...",
	"€", "EUR",
	"£", "GBP",
	"¥", "JPY",
)

// NormalizeText replaces typographic Unicode characters with their ASCII
// equivalents, leaving clean text unchanged
func NormalizeText(text string) string {
	return asciiNormalizer.Replace(text)
}
