package constants

// =======================
// KOLOM SHEET KONSUMSI
// =======================

// IDColumn adalah kolom identitas pelanggan yang dipakai untuk join 2 sheet.
const IDColumn = "IDPEL"

// NameColumn kolom nama pelanggan untuk tampilan hasil.
const NameColumn = "NAMA"

// ReadingMarker penanda kolom pembacaan bulanan (dicocokkan case-insensitive).
const ReadingMarker = "REK"

// IDKeyword dipakai untuk mencari kandidat kolom identitas bila IDPEL tidak ada.
const IDKeyword = "ID"

// Kolom hasil perhitungan yang ditambahkan ke tabel analisis.
const (
	ColAvgPeriod1 = "Rata2_Periode1"
	ColAvgPeriod2 = "Rata2_Periode2"
	ColPctChange  = "Selisih_Rata2"
)

// MonthsID nama bulan Indonesia, indeks 1-12 (indeks 0 sengaja kosong).
var MonthsID = [13]string{
	"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}
