package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var integerRegex = regexp.MustCompile(`-?\d+`)

// CoerceScore converts a recovered score of unknown shape into a plain
// integer. Integers pass through, floats round half away from zero, and
// strings are stripped of "%" and other decoration before the first signed
// integer substring is taken. Returns false when no number can be recovered.
func CoerceScore(score any) (int, bool) {
	switch v := score.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(math.Round(v)), true
	case float32:
		return int(math.Round(float64(v))), true
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v, "%", ""))
		if m := integerRegex.FindString(cleaned); m != "" {
			if n, err := strconv.Atoi(m); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}
