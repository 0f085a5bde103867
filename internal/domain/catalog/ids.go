package catalog

import (
	"strconv"
	"strings"
)

// Slug lowercases s and collapses whitespace runs into a single dash.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func childID(entryID, kind string, n int) string {
	return entryID + "-" + kind + "-" + strconv.Itoa(n)
}

var ageGroupLabels = map[string]string{
	"adulto":    "Adulto",
	"crianca":   "Criança",
	"idoso":     "Idoso",
	"estudante": "Estudante",
	"familia":   "Família",
}

func ageGroupLabel(group string) string {
	if l, ok := ageGroupLabels[group]; ok {
		return l
	}
	return group
}
