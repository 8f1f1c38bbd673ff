package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the release-date formats observed in the raw dataset.
var dateLayouts = []string{
	"Jan 2, 2006",
	"2006-01-02",
	time.RFC3339,
	"Jan 2006",
	"2006",
}

// ParseNumber coerces a raw JSON value into a float64. Numbers and numeric
// strings parse to their value; everything else (null, malformed text,
// collections) becomes NaN, the pre-imputation missing marker. Negative
// values pass through untouched.
func ParseNumber(raw interface{}) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", "")), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if v {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// ParseDate coerces a raw JSON value into a release date. Unparseable or
// absent values become the zero time, the not-a-time sentinel.
func ParseDate(raw interface{}) time.Time {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// NormalizeTags coerces a raw tag value into a TagField.
//
// Mappings keep their weights, lists keep their order, and strings are parsed
// as a literal mapping or list (keys-as-list on mapping success). Parse
// failures and every other shape, null included, normalize to an empty field.
// Never panics, never yields a null-shaped value.
func NormalizeTags(raw interface{}) TagField {
	switch v := raw.(type) {
	case map[string]interface{}:
		weights := make(map[string]float64, len(v))
		for name, w := range v {
			weight := ParseNumber(w)
			if math.IsNaN(weight) {
				weight = 0
			}
			weights[name] = weight
		}
		return TagsFromWeights(weights)
	case []interface{}:
		return TagsFromNames(stringList(v))
	case string:
		parsed, ok := parseLooseLiteral(v)
		if !ok {
			return TagsFromNames([]string{})
		}
		switch p := parsed.(type) {
		case map[string]interface{}:
			names := make([]string, 0, len(p))
			for name := range p {
				names = append(names, name)
			}
			return TagsFromNames(sortedCopy(names))
		case []interface{}:
			return TagsFromNames(stringList(p))
		default:
			return TagsFromNames([]string{})
		}
	default:
		return TagsFromWeights(map[string]float64{})
	}
}

// NormalizeGenres coerces a raw genre value into a list of genre names.
// Never nil.
func NormalizeGenres(raw interface{}) []string {
	list, ok := raw.([]interface{})
	if !ok {
		return []string{}
	}
	return stringList(list)
}

// stringList converts a decoded JSON array to strings, rendering non-string
// scalars through their literal form and skipping nested collections.
func stringList(list []interface{}) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			out = append(out, strconv.FormatBool(v))
		case nil, []interface{}, map[string]interface{}:
			// skip
		default:
			out = append(out, fmt.Sprintf("%v", v))
		}
	}
	return out
}

// parseLooseLiteral parses a stringified mapping or list. CSV round-trips of
// the dataset store these as Python-style literals with single quotes, so a
// strict JSON parse gets one retry with quotes rewritten.
func parseLooseLiteral(s string) (interface{}, bool) {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(s), &parsed); err == nil {
		return parsed, true
	}

	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		rewritten := strings.ReplaceAll(s, "'", `"`)
		if err := json.Unmarshal([]byte(rewritten), &parsed); err == nil {
			return parsed, true
		}
	}

	return nil, false
}

func sortedCopy(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.Strings(out)
	return out
}
