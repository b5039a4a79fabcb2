package service

import "testing"

func TestWeight_SameRegion(t *testing.T) {
	if w := Weight("Hubli", "Hubli"); w != 1.0 {
		t.Errorf("same-region weight = %.2f, want 1.00", w)
	}
}

func TestWeight_CrossRegion(t *testing.T) {
	if w := Weight("Dharwad", "Hubli"); w != 0.5 {
		t.Errorf("cross-region weight = %.2f, want 0.50", w)
	}
}

func TestWeight_CaseSensitive(t *testing.T) {
	// Region comparison is an exact match; "hubli" is not "Hubli".
	if w := Weight("hubli", "Hubli"); w != 0.5 {
		t.Errorf("case-mismatched weight = %.2f, want 0.50", w)
	}
}

func TestWeight_EmptyRegions(t *testing.T) {
	// A voter with no region on file still matches an empty request
	// region exactly; anything else is cross-region.
	if w := Weight("", ""); w != 1.0 {
		t.Errorf("empty-vs-empty weight = %.2f, want 1.00", w)
	}
	if w := Weight("", "Hubli"); w != 0.5 {
		t.Errorf("empty-vs-region weight = %.2f, want 0.50", w)
	}
}
