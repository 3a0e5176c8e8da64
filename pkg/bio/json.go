package bio

import (
	"encoding/json"
	"fmt"
	"io"
)

/*
WriteJSON takes an io.Writer and a value, typically a classification or
evaluation result, and prints an indented JSON representation of the value
onto the writer. It returns an error if serialization or printing fails.
*/
func WriteJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("serializing %T as JSON: %v", v, err)
	}
	return nil
}
