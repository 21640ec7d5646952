package entity

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLabel приводит метку к виду ключа таблицы:
// NFKC, нижний регистр, подчёркивания в пробелы, одиночные пробелы без краёв.
func NormalizeLabel(label string) string {
	s := norm.NFKC.String(label)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// QueryTerm готовит имя для поискового запроса: регистр сохраняется.
// "Tomato___Late_blight" -> "Tomato Late blight".
func QueryTerm(name string) string {
	s := norm.NFKC.String(name)
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(s), " ")
}
