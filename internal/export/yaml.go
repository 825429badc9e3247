package export

import (
	"fmt"
	"io"

	"github.com/dvorakchen/number-extracter/internal/models"
	"gopkg.in/yaml.v3"
)

func WriteYAML(w io.Writer, success []models.SuccessResp) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]Row{"track_numbers": toRows(success)}); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}
