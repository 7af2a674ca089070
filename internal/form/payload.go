package form

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"school-admissions/backend/internal/model"
)

// Reserved payload keys consumed by the workflow itself
const (
	KeyEmail    = "email"
	KeyBranchID = "branchId"
)

// Values submitted form values keyed by field machine name
type Values map[string]string

// Normalize converts a decoded JSON payload into string values.
// Reserved keys are dropped; keys holding objects or arrays are returned as invalid.
func Normalize(payload map[string]any) (Values, []string) {
	values := make(Values, len(payload))
	var invalid []string

	for key, raw := range payload {
		if key == KeyEmail || key == KeyBranchID {
			continue
		}
		switch v := raw.(type) {
		case nil:
			values[key] = ""
		case string:
			values[key] = strings.TrimSpace(v)
		case bool:
			values[key] = strconv.FormatBool(v)
		case float64:
			values[key] = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			values[key] = v.String()
		default:
			invalid = append(invalid, key)
		}
	}
	sort.Strings(invalid)
	return values, invalid
}

// Result outcome of mapping values onto an application
type Result struct {
	Extra   map[string]any
	Unknown []string
}

// Apply writes column-backed values onto app. Values for active fields
// without a column are collected into Extra; every other key is Unknown.
// Empty values are skipped.
func Apply(app *model.Application, values Values, active []model.FormField) Result {
	activeByName := make(map[string]bool, len(active))
	for _, f := range active {
		activeByName[f.Name] = true
	}

	res := Result{Extra: map[string]any{}}
	for key, v := range values {
		if c, ok := byName[key]; ok {
			*c.ref(app) = v
			continue
		}
		if activeByName[key] {
			if v != "" {
				res.Extra[key] = v
			}
			continue
		}
		res.Unknown = append(res.Unknown, key)
	}
	sort.Strings(res.Unknown)
	return res
}
