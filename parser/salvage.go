package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Field names of the chief's evaluation JSON.
const (
	FieldScoreAgent1 = "score_agent_1_percent"
	FieldScoreAgent2 = "score_agent_2_percent"
	FieldRanking     = "ranking"
	FieldAgent1Why   = "agent_1_reasoning"
	FieldAgent2Why   = "agent_2_reasoning"
	FieldSummary     = "best_solution_summary"
	FieldNotes       = "evaluation_notes"
)

var (
	scoreRegexes = map[string]*regexp.Regexp{
		FieldScoreAgent1: regexp.MustCompile(`"` + FieldScoreAgent1 + `"\s*:\s*(\d+)`),
		FieldScoreAgent2: regexp.MustCompile(`"` + FieldScoreAgent2 + `"\s*:\s*(\d+)`),
	}

	rankingRegex    = regexp.MustCompile(`(?s)"` + FieldRanking + `"\s*:\s*\[(.*?)\]`)
	quotedItemRegex = regexp.MustCompile(`"([^"]+)"`)

	// Per text field: a closed-string form tolerating escaped quotes, and an
	// open-ended form for strings the token limit cut off mid-value.
	textFieldRegexes = buildTextFieldRegexes(
		FieldAgent1Why,
		FieldAgent2Why,
		FieldSummary,
		FieldNotes,
	)
)

type textFieldRegex struct {
	field     string
	closed    *regexp.Regexp
	truncated *regexp.Regexp
}

func buildTextFieldRegexes(fields ...string) []textFieldRegex {
	out := make([]textFieldRegex, 0, len(fields))
	for _, f := range fields {
		out = append(out, textFieldRegex{
			field:     f,
			closed:    regexp.MustCompile(`(?s)"` + f + `"\s*:\s*"([^"]*(?:\\.[^"]*)*)"`),
			truncated: regexp.MustCompile(`(?s)"` + f + `"\s*:\s*"([^"]*)`),
		})
	}
	return out
}

// salvage extracts fields independently by pattern, the last resort when the
// structural strategies fail (typically a reply truncated mid-object). It
// yields a result only when at least one of the two scores was recovered;
// free text alone is not a usable verdict.
func (e *Extractor) salvage(text string) map[string]any {
	result := make(map[string]any)

	for field, re := range scoreRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				result[field] = n
			}
		}
	}

	if m := rankingRegex.FindStringSubmatch(text); m != nil {
		items := quotedItemRegex.FindAllStringSubmatch(m[1], -1)
		if len(items) > 0 {
			ranking := make([]string, 0, len(items))
			for _, item := range items {
				ranking = append(ranking, item[1])
			}
			result[FieldRanking] = ranking
		}
	}

	for _, tf := range textFieldRegexes {
		m := tf.closed.FindStringSubmatch(text)
		if m == nil {
			m = tf.truncated.FindStringSubmatch(text)
		}
		if m != nil {
			result[tf.field] = unescape(m[1])
		}
	}

	if _, ok := result[FieldScoreAgent1]; ok {
		return result
	}
	if _, ok := result[FieldScoreAgent2]; ok {
		return result
	}
	return nil
}

// unescape undoes the JSON escapes the salvage regexes capture literally.
func unescape(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	return s
}
