package service

import (
	"testing"

	"plnulp_backend/internals/features/analysis/model"
)

func rowWithPct(id string, pct float64) model.AnalysisRow {
	p := pct
	return model.AnalysisRow{Cells: map[string]string{"IDPEL": id}, SelisihRata2: &p}
}

func TestFilterByThreshold(t *testing.T) {
	rows := []model.AnalysisRow{
		rowWithPct("a", 5),
		rowWithPct("b", 19.95),
		rowWithPct("c", 20),
		rowWithPct("d", 20.05),
		rowWithPct("e", 45),
		{Cells: map[string]string{"IDPEL": "f"}}, // tanpa metrik: selalu dibuang
	}

	le := FilterByThreshold(rows, OpLE, 20, DefaultTolerance)
	if ids(le) != "a,b,c" {
		t.Errorf("<=20: got %s", ids(le))
	}

	ge := FilterByThreshold(rows, OpGE, 20, DefaultTolerance)
	if ids(ge) != "c,d,e" {
		t.Errorf(">=20: got %s", ids(ge))
	}

	// == pakai jendela toleransi, bukan perbandingan float persis
	eq := FilterByThreshold(rows, OpEQ, 20, DefaultTolerance)
	if ids(eq) != "b,c,d" {
		t.Errorf("==20±0.1: got %s", ids(eq))
	}

	eq = FilterByThreshold(rows, OpEQ, 20, 0)
	if ids(eq) != "c" {
		t.Errorf("==20±0: got %s", ids(eq))
	}
}

func ids(rows []model.AnalysisRow) string {
	out := ""
	for i, r := range rows {
		if i > 0 {
			out += ","
		}
		out += r.Cells["IDPEL"]
	}
	return out
}
