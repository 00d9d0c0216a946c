package constants

// =======================
// KATEGORI LBKB (checklist rumah kosong)
// =======================

// LBKBCategory satu kategori checklist: nama tampilan, nilai sah,
// dan keyword untuk menemukan kolomnya di header sheet LBKB.
type LBKBCategory struct {
	Name     string
	Options  []string
	Keywords []string
}

// LBKBCategories tiga kategori tetap; urutan dipertahankan untuk tampilan.
var LBKBCategories = []LBKBCategory{
	{
		Name:     "KONDISI BANGUNAN",
		Options:  []string{"Terawat", "Tidak Terawat"},
		Keywords: []string{"KONDISI", "BANGUN"},
	},
	{
		Name:     "ANGKA STAN VS FOTO METER",
		Options:  []string{"Sesuai", "Tidak Sesuai"},
		Keywords: []string{"ANGKA", "STAN", "FOTO", "METER"},
	},
	{
		Name:     "TERLIHAT PEMAKAIAN",
		Options:  []string{"Ya", "Tidak"},
		Keywords: []string{"TERLIHAT", "PEMAKAIAN"},
	},
}

// FindLBKBCategory cari kategori berdasarkan nama (exact match).
func FindLBKBCategory(name string) (LBKBCategory, bool) {
	for _, cat := range LBKBCategories {
		if cat.Name == name {
			return cat, true
		}
	}
	return LBKBCategory{}, false
}
