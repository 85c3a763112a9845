package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber decodes an integer from a JSON number, a numeric string or
// null. Anything unparseable decodes to 0.
type FlexNumber int

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		*n = FlexNumber(int(v))
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			*n = 0
			return nil
		}
		*n = FlexNumber(i)
	default:
		*n = 0
	}
	return nil
}
