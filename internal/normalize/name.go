package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Name folds a player name so "ann ", "Ann" and "ANN" are the same player.
func Name(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}

// Display trims the name and collapses inner spaces, keeping the case.
func Display(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Title is used when a name was typed in all lower case.
func Title(name string) string {
	return cases.Title(language.Und).String(Display(name))
}
