package pluginio

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output is the result document the host reads from standard output.
type Output struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteResult writes the output document for a finished run. A nil err reports
// message as the output.
func WriteResult(w io.Writer, message string, err error) error {
	out := Output{Output: message}
	if err != nil {
		out = Output{Error: err.Error()}
	}
	if out.Output == "" && out.Error == "" {
		out.Output = "ok"
	}
	data, marshalErr := json.Marshal(out)
	if marshalErr != nil {
		return fmt.Errorf("encode plugin output: %w", marshalErr)
	}
	if _, writeErr := w.Write(append(data, '\n')); writeErr != nil {
		return fmt.Errorf("write plugin output: %w", writeErr)
	}
	return nil
}
