package onboarding

import (
	"encoding/json"
)

// formToJSON turns multipart values into a JSON object so the same decoder
// serves both content types. Repeated keys become arrays.
func formToJSON(values map[string][]string) ([]byte, error) {
	obj := make(map[string]any, len(values))
	for key, vals := range values {
		switch len(vals) {
		case 0:
			continue
		case 1:
			obj[key] = vals[0]
		default:
			obj[key] = vals
		}
	}
	return json.Marshal(obj)
}

func decodeForm(values map[string][]string, req *StepRequest) error {
	body, err := formToJSON(values)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, req)
}
