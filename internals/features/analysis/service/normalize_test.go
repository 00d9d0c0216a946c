package service

import "testing"

func TestNormalizeChecklistValue(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"Sesuai", "sesuai"},
		{"SESUAI ", "sesuai"},
		{"Tidak Sesuai", "tidak sesuai"},
		{"Tdk Sesuai", "tidak sesuai"},
		{"tidak_sesuai", "tidak sesuai"},
		{"TIDAK  SESUAI", "tidak sesuai"},
		{"Terawat", "terawat"},
		{"tdk terawat", "tidak terawat"},
		{"T. Terawat", "tidak terawat"},
		{"Y", "ya"},
		{"yes", "ya"},
		{"YA", "ya"},
		{"Tdk", "tidak"},
		{"no", "tidak"},
		{"t", "tidak"},
		// aturan prioritas: frasa campuran jatuh ke "tidak sesuai"
		{"tidak sesuai dan tidak terawat", "tidak sesuai"},
		// nilai tak dikenal lolos apa adanya setelah dibersihkan
		{"  Rumah Kosong!! ", "rumah kosong"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeChecklistValue(c.raw); got != c.want {
			t.Errorf("NormalizeChecklistValue(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}
