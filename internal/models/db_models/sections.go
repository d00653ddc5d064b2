package db_models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gorm.io/datatypes"
)

// Section is the canonical shape for every narrative section except details:
// a headline plus flat bullet points.
type Section struct {
	Headline string   `json:"headline"`
	Points   []string `json:"points"`
}

func MarshalSection(s Section) datatypes.JSON {
	if s.Points == nil {
		s.Points = []string{}
	}
	raw, _ := json.Marshal(s)
	return raw
}

func MarshalDetails(m map[string]string) datatypes.JSON {
	if m == nil {
		m = map[string]string{}
	}
	raw, _ := json.Marshal(m)
	return raw
}

// NormalizeSection converts any historical section encoding to the canonical
// Section. Supported legacy shapes, in detection order:
//   - canonical {headline, points}
//   - {main, subPoints}
//   - arrays of objects/strings (e.g. [{main, subPoints}, ...])
//   - {type, problem} pairs from old biggest-problem payloads
//   - maps of named sub-objects (old costOfNotBuying {financial, emotional, social})
//   - pre-rendered strings, one point per line
//   - any of the above wrapped in a {data: ...} envelope
func NormalizeSection(raw datatypes.JSON) Section {
	if len(raw) == 0 {
		return Section{Points: []string{}}
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return Section{Points: []string{string(raw)}}
	}
	return sectionFromValue(v)
}

func sectionFromValue(v interface{}) Section {
	switch t := v.(type) {
	case nil:
		return Section{Points: []string{}}
	case string:
		return Section{Points: splitLines(t)}
	case []interface{}:
		s := Section{Points: []string{}}
		for _, item := range t {
			s.Points = append(s.Points, pointsFromValue(item)...)
		}
		return s
	case map[string]interface{}:
		if data, ok := t["data"]; ok && len(t) == 1 {
			return sectionFromValue(data)
		}
		s := Section{Points: []string{}}
		if h, ok := stringAt(t, "headline"); ok {
			s.Headline = h
		} else if h, ok := stringAt(t, "main"); ok {
			s.Headline = h
		}
		if pts, ok := t["points"]; ok {
			s.Points = append(s.Points, pointsFromValue(pts)...)
			return s
		}
		if pts, ok := t["subPoints"]; ok {
			s.Points = append(s.Points, pointsFromValue(pts)...)
			return s
		}
		// Map of named values with no recognized keys: flatten to "key: value"
		// points in stable order.
		keys := make([]string, 0, len(t))
		for k := range t {
			if k == "headline" || k == "main" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			for _, p := range pointsFromValue(t[k]) {
				s.Points = append(s.Points, fmt.Sprintf("%s: %s", k, p))
			}
		}
		return s
	default:
		return Section{Points: []string{fmt.Sprintf("%v", t)}}
	}
}

func pointsFromValue(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return splitLines(t)
	case []interface{}:
		var out []string
		for _, item := range t {
			out = append(out, pointsFromValue(item)...)
		}
		return out
	case map[string]interface{}:
		// {main, subPoints} entries keep the main point first, then its subs.
		if main, ok := stringAt(t, "main"); ok {
			out := []string{main}
			out = append(out, pointsFromValue(t["subPoints"])...)
			return out
		}
		if problem, ok := stringAt(t, "problem"); ok {
			if typ, ok := stringAt(t, "type"); ok {
				return []string{capitalize(typ) + ": " + problem}
			}
			return []string{problem}
		}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []string
		for _, k := range keys {
			for _, p := range pointsFromValue(t[k]) {
				out = append(out, fmt.Sprintf("%s: %s", k, p))
			}
		}
		return out
	default:
		return []string{fmt.Sprintf("%v", t)}
	}
}

// NormalizeDetails converts any historical details encoding to a flat
// string map. Legacy rows stored "Name: X • Career: Y" strings or nested
// {data: {...}} objects.
func NormalizeDetails(raw datatypes.JSON) map[string]string {
	out := map[string]string{}
	if len(raw) == 0 {
		return out
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return out
	}
	detailsFromValue(v, out)
	return out
}

func detailsFromValue(v interface{}, out map[string]string) {
	switch t := v.(type) {
	case string:
		for _, pair := range strings.FieldsFunc(t, func(r rune) bool {
			return r == '\n' || r == '•' || r == ','
		}) {
			k, val, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key := strings.ToLower(strings.TrimSpace(k))
			if key != "" {
				out[key] = strings.TrimSpace(val)
			}
		}
	case map[string]interface{}:
		if data, ok := t["data"]; ok && len(t) == 1 {
			detailsFromValue(data, out)
			return
		}
		for k, val := range t {
			if s, ok := val.(string); ok {
				out[strings.ToLower(k)] = s
			} else if val != nil {
				out[strings.ToLower(k)] = fmt.Sprintf("%v", val)
			}
		}
	}
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*"))
		if line != "" {
			out = append(out, line)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func stringAt(m map[string]interface{}, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
