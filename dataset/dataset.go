// Package dataset 负责加载疾病数据集（CSV / XLSX）。
//
// 数据契约：一列疾病名、一列或多列症状（单元格可为逗号分隔列表）、
// 若干推荐文本列（用药 / 饮食 / 忌口，允许逐行缺失）。
// 加载后的 Row 不可变，生命周期仅限初始化。
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rushteam/diagkit/core"
)

// Row 是一条疾病记录：疾病名、原始症状单元格、推荐文本。
type Row struct {
	Disease      string
	SymptomCells []string // 原始值，规范化在 symptom 包完成
	Medicine     string
	Diet         string
	FoodsToAvoid string
}

// Dataset 是加载完成的数据集。
type Dataset struct {
	Path           string
	Rows           []Row
	SymptomColumns []string // 解析出的症状列名（已 trim）
}

// 列名别名：源数据的表头存在拼写与空白不一致，统一在加载时归一。
var columnAliases = map[string]string{
	"Hyderation":          "Hydration",
	"Notes/Consideration": "Notes",
}

// header 解析结果：各语义列的下标。
type columns struct {
	disease  int
	symptoms []int
	names    []string // symptoms 对应的列名
	medicine int
	diet     int
	avoid    int
}

// Load 按扩展名选择解析器加载数据集。文件缺失或表头不可用时立刻失败，
// 调用方不得用部分加载的数据继续初始化。
func Load(path string) (*Dataset, error) {
	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		records, err = readXLSX(path)
	default:
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	return build(path, records)
}

func build(path string, records [][]string) (*Dataset, error) {
	if len(records) < 2 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("dataset %s: need a header row and at least one data row", path))
	}

	cols, err := resolveColumns(records[0])
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Path:           path,
		Rows:           make([]Row, 0, len(records)-1),
		SymptomColumns: cols.names,
	}
	for _, rec := range records[1:] {
		row := Row{
			Disease:      strings.TrimSpace(cell(rec, cols.disease)),
			Medicine:     strings.TrimSpace(cell(rec, cols.medicine)),
			Diet:         strings.TrimSpace(cell(rec, cols.diet)),
			FoodsToAvoid: strings.TrimSpace(cell(rec, cols.avoid)),
		}
		if row.Disease == "" {
			continue
		}
		for _, idx := range cols.symptoms {
			row.SymptomCells = append(row.SymptomCells, cell(rec, idx))
		}
		ds.Rows = append(ds.Rows, row)
	}
	if len(ds.Rows) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("dataset %s: no usable rows", path))
	}
	return ds, nil
}

// resolveColumns 清洗表头并定位语义列。疾病列与症状列缺一不可。
func resolveColumns(header []string) (*columns, error) {
	cols := &columns{disease: -1, medicine: -1, diet: -1, avoid: -1}
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		switch {
		case name == "Disease":
			cols.disease = i
		case strings.HasPrefix(name, "Symptom_") || strings.HasPrefix(name, "Symptom "):
			cols.symptoms = append(cols.symptoms, i)
			cols.names = append(cols.names, name)
		case name == "Medicine" || name == "Medicine Recommendation":
			cols.medicine = i
		case name == "Diet" || name == "Diet Recommendation":
			cols.diet = i
		case name == "Foods To Avoid":
			cols.avoid = i
		}
	}
	if cols.disease < 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset header: disease column not found")
	}
	if len(cols.symptoms) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"dataset header: no symptom columns found")
	}
	return cols, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}
