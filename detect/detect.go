// Package detect tells IMS CFRubric documents apart from Turnitin RBC
// exports by looking at their top-level keys.
package detect

import (
	"github.com/tidwall/gjson"
)

// IsIMS reports whether a decoded JSON document looks like an IMS rubric.
// Turnitin keys always win over IMS keys.
func IsIMS(doc any) bool {
	obj, ok := doc.(map[string]any)
	if !ok {
		return false
	}
	_, rubric := obj["Rubric"]
	_, rubricCriterion := obj["RubricCriterion"]
	_, cf := obj["CFRubricCriterion"]
	_, criteria := obj["criteria"]

	return (cf || criteria || obj["type"] == "Rubric" || obj["@type"] == "Rubric") &&
		!(rubric || rubricCriterion)
}

// IsIMSJSON applies IsIMS to raw JSON without decoding the whole document.
func IsIMSJSON(data []byte) bool {
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return false
	}

	top := make(map[string]any)
	root.ForEach(func(key, value gjson.Result) bool {
		// only string values take part in the type checks
		if value.Type == gjson.String {
			top[key.String()] = value.String()
		} else {
			top[key.String()] = nil
		}
		return true
	})
	return IsIMS(top)
}
