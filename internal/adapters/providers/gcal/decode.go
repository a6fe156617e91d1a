package gcal

import "encoding/json"

// remarshal converts the generic decoded body into a typed value.
func remarshal(body any, into any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, into)
}
