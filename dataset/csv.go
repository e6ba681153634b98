package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
)

// readCSV 读取整个 CSV 文件。列数允许逐行不齐（推荐列常缺失）。
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return records, nil
}
