package indicator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	result := SMA(prices, 3)
	expected := []float64{2, 3, 4}

	if len(result) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(result))
	}
	for i := range expected {
		if !almostEqual(result[i], expected[i]) {
			t.Errorf("SMA[%d] = %v, want %v", i, result[i], expected[i])
		}
	}
}

func TestSMA_NotEnoughData(t *testing.T) {
	if got := SMA([]float64{1, 2}, 3); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := SMA([]float64{1, 2, 3}, 0); len(got) != 0 {
		t.Errorf("expected empty result for zero period, got %v", got)
	}
}

func TestTrailingMean(t *testing.T) {
	prices := []float64{10, 20, 30, 40}

	if got := TrailingMean(prices, 2); !almostEqual(got, 35) {
		t.Errorf("TrailingMean(2) = %v, want 35", got)
	}
	if got := TrailingMean(prices, 4); !almostEqual(got, 25) {
		t.Errorf("TrailingMean(4) = %v, want 25", got)
	}
	if got := TrailingMean(prices, 5); got != 0 {
		t.Errorf("TrailingMean over short series = %v, want 0", got)
	}
}

func TestEMA_FirstValueIsSMA(t *testing.T) {
	prices := []float64{2, 4, 6, 8}

	result := EMA(prices, 2)
	if len(result) != 3 {
		t.Fatalf("expected 3 values, got %d", len(result))
	}
	if !almostEqual(result[0], 3) {
		t.Errorf("first EMA = %v, want SMA seed 3", result[0])
	}
}

func TestSeededEMA(t *testing.T) {
	// Constant series: EMA stays at the constant regardless of period.
	prices := []float64{1.5, 1.5, 1.5, 1.5}
	if got := SeededEMA(prices, 12); !almostEqual(got, 1.5) {
		t.Errorf("SeededEMA of constant series = %v, want 1.5", got)
	}

	// Single value: the seed itself.
	if got := SeededEMA([]float64{2.25}, 26); !almostEqual(got, 2.25) {
		t.Errorf("SeededEMA of single value = %v, want 2.25", got)
	}

	// Hand-computed two-step fold with alpha = 2/13.
	alpha := 2.0 / 13.0
	want := alpha*3.0 + (1-alpha)*(alpha*2.0+(1-alpha)*1.0)
	if got := SeededEMA([]float64{1, 2, 3}, 12); !almostEqual(got, want) {
		t.Errorf("SeededEMA = %v, want %v", got, want)
	}

	if got := SeededEMA(nil, 12); got != 0 {
		t.Errorf("SeededEMA of empty series = %v, want 0", got)
	}
}
