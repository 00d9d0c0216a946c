package dto

import (
	"plnulp_backend/internals/constants"
	"plnulp_backend/internals/features/analysis/model"
)

// ============================
// Request DTO
// ============================

// AnalyzeRequest parameter satu kali render analisis. Threshold/operator
// hanya relevan bila mode memakai penurunan; tolerance hanya untuk "==".
type AnalyzeRequest struct {
	Mode       string              `json:"mode" validate:"required,oneof=penurunan lbkb gabungan"`
	Threshold  float64             `json:"threshold" validate:"gte=0,lte=100"`
	Operator   string              `json:"operator" validate:"omitempty,oneof=<= >= =="`
	Tolerance  *float64            `json:"tolerance" validate:"omitempty,gte=0,lte=100"`
	CustomerID string              `json:"customer_id"`
	Period1    []string            `json:"period_1"`
	Period2    []string            `json:"period_2"`
	Categories map[string][]string `json:"lbkb_categories"`
}

// ============================
// Response DTO
// ============================

type ColumnsResponse struct {
	Columns []model.MonthColumn `json:"columns"`
	Total   int                 `json:"total"`
}

type PresetResponse struct {
	Months     int                 `json:"months"`
	Period1    []model.MonthColumn `json:"period_1"`
	Period2    []model.MonthColumn `json:"period_2"`
	RangeLabel string              `json:"range_label,omitempty"`
}

type AnalyzeResponse struct {
	Title        string              `json:"title"`
	Mode         string              `json:"mode"`
	Operator     string              `json:"operator,omitempty"`
	Threshold    float64             `json:"threshold"`
	Tolerance    float64             `json:"tolerance"`
	PeriodLabel  string              `json:"period_label,omitempty"`
	Columns      []string            `json:"columns"`
	Rows         []map[string]any    `json:"rows"`
	Total        int                 `json:"total"`
	Warnings     []string            `json:"warnings,omitempty"`
	Distribution *model.Distribution `json:"distribution,omitempty"`
}

// ============================
// Converter
// ============================

// RowToMap gabungkan sel asli dengan kolom metrik hasil hitung.
func RowToMap(r model.AnalysisRow) map[string]any {
	out := make(map[string]any, len(r.Cells)+3)
	for k, v := range r.Cells {
		out[k] = v
	}
	if r.Rata2Periode1 != nil {
		out[constants.ColAvgPeriod1] = *r.Rata2Periode1
	}
	if r.Rata2Periode2 != nil {
		out[constants.ColAvgPeriod2] = *r.Rata2Periode2
	}
	if r.SelisihRata2 != nil {
		out[constants.ColPctChange] = *r.SelisihRata2
	}
	return out
}

func RowsToMaps(rows []model.AnalysisRow) []map[string]any {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, RowToMap(r))
	}
	return out
}
