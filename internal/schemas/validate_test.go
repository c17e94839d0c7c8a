package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_RBC(t *testing.T) {
	valid := `{
	  "Rubric": [{"id": 1, "name": "Essay", "criterion": [2000000], "scale_values": [1000000], "criterion_scales_all": [3000000]}],
	  "RubricCriterion": [{"id": 2000000, "name": "Analysis", "description": null, "criterion_scales": [3000000], "position": 1}],
	  "RubricScale": [{"id": 1000000, "name": "Good", "position": 1}],
	  "RubricCriterionScale": [{"id": 3000000, "criterion": 2000000, "scale_value": 1000000, "description": "Fine", "value": 5}]
	}`
	require.NoError(t, ValidateJSON(RBC, []byte(valid)))

	err := ValidateJSON(RBC, []byte(`{"Rubric": [], "RubricCriterion": []}`))
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
	assert.Contains(t, err.Error(), "rbc schema")
}

func TestValidateJSON_RBCNameTooLong(t *testing.T) {
	doc := `{
	  "Rubric": [{"id": 1, "name": "This rubric name is far too long to upload", "criterion": [], "scale_values": [], "criterion_scales_all": []}],
	  "RubricCriterion": [], "RubricScale": [], "RubricCriterionScale": []
	}`
	var ve *ValidationError
	require.True(t, errors.As(ValidateJSON(RBC, []byte(doc)), &ve))
}

func TestValidateJSON_CFRubric(t *testing.T) {
	doc := `{
	  "Identifier": "a", "URI": "urn:uuid:a", "Title": "T", "description": "",
	  "lastChangeDateTime": "2025-01-02T03:04:05Z",
	  "CFRubricCriterion": [{
	    "Identifier": "b", "URI": "urn:uuid:b", "position": 0, "Description": "Analysis",
	    "lastChangeDateTime": "2025-01-02T03:04:05Z",
	    "CFRubricCriterionLevels": [{"Identifier": "c", "URI": "urn:uuid:c", "position": 0, "score": 5, "Description": "Good", "lastChangeDateTime": "2025-01-02T03:04:05Z"}]
	  }]
	}`
	require.NoError(t, ValidateJSON(CFRubric, []byte(doc)))
	require.Error(t, ValidateJSON(CFRubric, []byte(`{"Title": "T"}`)))
}

func TestValidateJSON_UnknownSchema(t *testing.T) {
	err := ValidateJSON("nope", []byte(`{}`))
	var le *SchemaLoadError
	require.True(t, errors.As(err, &le))
}
