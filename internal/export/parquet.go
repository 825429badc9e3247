package export

import (
	"fmt"
	"io"

	"github.com/dvorakchen/number-extracter/internal/models"
	"github.com/parquet-go/parquet-go"
)

func WriteParquet(w io.Writer, success []models.SuccessResp) error {
	if err := parquet.Write(w, toRows(success)); err != nil {
		return fmt.Errorf("failed to write parquet: %w", err)
	}
	return nil
}
