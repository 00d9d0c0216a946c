package service

import "testing"

func TestBinDistributionLE(t *testing.T) {
	// threshold 20 -> quarter 5: [0,5) [5,10) [10,15) [15,20]
	dist := BinDistribution([]float64{0, 4.9, 5, 12, 15, 20}, OpLE, 20, DefaultTolerance)
	if dist == nil || dist.Skipped {
		t.Fatalf("distribusi <= tidak boleh dilewati: %+v", dist)
	}
	if len(dist.Buckets) != 4 {
		t.Fatalf("harus 4 bucket, got %d", len(dist.Buckets))
	}
	counts := []int{dist.Buckets[0].Count, dist.Buckets[1].Count, dist.Buckets[2].Count, dist.Buckets[3].Count}
	// batas bawah inklusif; nilai tepat threshold masuk bucket terakhir
	want := []int{2, 1, 1, 2}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("bucket counts = %v, want %v", counts, want)
		}
	}
	if dist.Buckets[0].Label != "≤ 5.00%" {
		t.Errorf("label bucket pertama: %q", dist.Buckets[0].Label)
	}
}

func TestBinDistributionLEZeroThreshold(t *testing.T) {
	// threshold 0: lebar bucket jatuh ke 1 supaya tidak bagi nol
	dist := BinDistribution([]float64{0, 0}, OpLE, 0, DefaultTolerance)
	if dist == nil || dist.Skipped {
		t.Fatalf("threshold 0 tetap menghasilkan distribusi: %+v", dist)
	}
	if dist.Buckets[0].Count != 2 {
		t.Errorf("semua nilai 0 harus di bucket pertama: %+v", dist.Buckets)
	}
}

func TestBinDistributionGE(t *testing.T) {
	dist := BinDistribution([]float64{20, 30, 50, 100}, OpGE, 20, DefaultTolerance)
	if dist == nil || dist.Skipped {
		t.Fatalf("distribusi >= dengan span positif: %+v", dist)
	}
	// span 80, quarter 20: [20,40) [40,60) [60,80) [80,100]
	counts := []int{dist.Buckets[0].Count, dist.Buckets[1].Count, dist.Buckets[2].Count, dist.Buckets[3].Count}
	want := []int{2, 1, 0, 1}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("bucket counts = %v, want %v", counts, want)
		}
	}

	// semua nilai tepat di threshold: span nol, dilewati
	dist = BinDistribution([]float64{20, 20}, OpGE, 20, DefaultTolerance)
	if dist == nil || !dist.Skipped || dist.Note == "" {
		t.Errorf("span nol harus Skipped dengan catatan: %+v", dist)
	}
}

func TestBinDistributionEQ(t *testing.T) {
	dist := BinDistribution([]float64{20, 20.05}, OpEQ, 20, DefaultTolerance)
	if dist == nil || !dist.Skipped {
		t.Fatalf("operator == harus Skipped: %+v", dist)
	}
}

func TestBinDistributionEmpty(t *testing.T) {
	if dist := BinDistribution(nil, OpLE, 20, DefaultTolerance); dist != nil {
		t.Errorf("tanpa nilai harus nil, got %+v", dist)
	}
}
