package motion

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

func Capitalize(str string) string {
	r, size := utf8.DecodeRuneInString(str)
	if r == utf8.RuneError {
		return str
	}
	return string(unicode.ToUpper(r)) + str[size:]
}

// NameFor turns a field name into a label: "life_expectancy" gives
// "Life expectancy".
func NameFor(field string) string {
	return Capitalize(strings.ReplaceAll(field, "_", " "))
}

func Plural(word string, count float64) string {
	if math.Abs(count) == 1 {
		return word
	}
	if strings.HasSuffix(word, "y") {
		return strings.TrimSuffix(word, "y") + "ies"
	}
	return word + "s"
}

// FormatNumber rounds v to n decimals and separates groups of x digits of the
// integer part with a comma. x defaults to 3.
func FormatNumber(v float64, n, x int) string {
	if n < 0 {
		n = 0
	}
	if x <= 0 {
		x = 3
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	var (
		str      = strconv.FormatFloat(v, 'f', n, 64)
		neg      = strings.HasPrefix(str, "-")
		num, dec string
	)
	str = strings.TrimPrefix(str, "-")
	num = str
	if i := strings.IndexByte(str, '.'); i >= 0 {
		num, dec = str[:i], str[i:]
	}
	var buf strings.Builder
	if neg {
		buf.WriteByte('-')
	}
	for i, c := range num {
		if i > 0 && (len(num)-i)%x == 0 {
			buf.WriteByte(',')
		}
		buf.WriteRune(c)
	}
	buf.WriteString(dec)
	return buf.String()
}

// Uniques returns the values of list in order of first appearance.
func Uniques(list []string) []string {
	var (
		out  = make([]string, 0, len(list))
		seen = make(map[string]struct{})
	)
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func sortStrings(list []string) []string {
	sort.Strings(list)
	return list
}
