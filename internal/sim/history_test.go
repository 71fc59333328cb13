package sim

import "testing"

func TestHistoryAppend(t *testing.T) {
	h := NewHistory([]string{"fuel", "o2"}, 2)

	if err := h.Append(0, 1000, []float64{1e-4, 1e-3}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := h.Append(1e-7, 1000.5, []float64{0.9e-4, 0.8e-3}); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	if h.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", h.Len())
	}

	row := h.Row(1)
	if row[0] != 0.9e-4 || row[1] != 0.8e-3 {
		t.Errorf("Row(1) = %v", row)
	}

	tm, temp, ok := h.Final()
	if !ok || tm != 1e-7 || temp != 1000.5 {
		t.Errorf("Final() = %v, %v, %v", tm, temp, ok)
	}
}

func TestHistoryAppendMismatch(t *testing.T) {
	h := NewHistory([]string{"fuel", "o2"}, 0)

	if err := h.Append(0, 1000, []float64{1}); err == nil {
		t.Error("expected error for short row")
	}
	if h.Len() != 0 {
		t.Errorf("mismatched row should not be stored, len=%d", h.Len())
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(nil, 0)
	if _, _, ok := h.Final(); ok {
		t.Error("expected !ok for empty history")
	}
	if h.Series("fuel") != nil {
		t.Error("expected nil series for unknown key")
	}
}

func TestHistoryNegativeCapacity(t *testing.T) {
	h := NewHistory([]string{"fuel"}, -5)
	if err := h.Append(0, 1000, []float64{1e-4}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if h.Len() != 1 {
		t.Errorf("expected 1 sample, got %d", h.Len())
	}
}
