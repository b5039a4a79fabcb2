package service

import (
	"math"
	"testing"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func voters(regions ...string) []model.VoterRegion {
	out := make([]model.VoterRegion, len(regions))
	for i, r := range regions {
		out[i] = model.VoterRegion{VoterID: string(rune('a' + i)), Region: r}
	}
	return out
}

func TestAggregate_AllSameRegion(t *testing.T) {
	agg := AggregateVoters(voters("Hubli", "Hubli", "Hubli"), "Hubli")

	if agg.TotalWeighted != 3.0 {
		t.Errorf("total = %.2f, want 3.00", agg.TotalWeighted)
	}
	if agg.VoterCount != 3 {
		t.Errorf("voter count = %d, want 3", agg.VoterCount)
	}
	if agg.SameRegion != 3 || agg.OtherRegion != 0 {
		t.Errorf("breakdown = %d/%d, want 3/0", agg.SameRegion, agg.OtherRegion)
	}
	if agg.AverageWeight != 1.0 {
		t.Errorf("average = %.2f, want 1.00", agg.AverageWeight)
	}
}

func TestAggregate_MixedRegions(t *testing.T) {
	// 20 local votes (20.0) + 10 cross-region votes (5.0) = exactly 25.0
	regions := make([]string, 0, 30)
	for i := 0; i < 20; i++ {
		regions = append(regions, "Hubli")
	}
	for i := 0; i < 10; i++ {
		regions = append(regions, "Dharwad")
	}

	agg := AggregateVoters(voters(regions...), "Hubli")

	if agg.TotalWeighted != 25.0 {
		t.Errorf("total = %.2f, want 25.00", agg.TotalWeighted)
	}
	if agg.SameRegion != 20 || agg.OtherRegion != 10 {
		t.Errorf("breakdown = %d/%d, want 20/10", agg.SameRegion, agg.OtherRegion)
	}
	// 25.0 / 30 voters
	if !almostEqual(agg.AverageWeight, 0.8333, 0.001) {
		t.Errorf("average = %.4f, want ~0.8333", agg.AverageWeight)
	}
}

func TestAggregate_NoVotes(t *testing.T) {
	agg := AggregateVoters(nil, "Hubli")

	if agg.TotalWeighted != 0 {
		t.Errorf("total = %.2f, want 0.00", agg.TotalWeighted)
	}
	if agg.VoterCount != 0 {
		t.Errorf("voter count = %d, want 0", agg.VoterCount)
	}
	if agg.AverageWeight != 0 {
		t.Errorf("average = %.2f, want 0.00 (no division by zero)", agg.AverageWeight)
	}
}

func TestAggregate_MonotonicUnderNewVotes(t *testing.T) {
	// Adding a vote can never decrease the weighted total; there is no
	// vote removal path.
	base := voters("Hubli", "Dharwad")
	prev := AggregateVoters(base, "Hubli").TotalWeighted

	for _, region := range []string{"Hubli", "Dharwad", "Belagavi"} {
		next := AggregateVoters(append(base, model.VoterRegion{VoterID: "z", Region: region}), "Hubli").TotalWeighted
		if next <= prev {
			t.Errorf("adding a %q vote: total %.2f not greater than %.2f", region, next, prev)
		}
	}
}

func TestAggregate_CrossRegionOnly(t *testing.T) {
	agg := AggregateVoters(voters("Dharwad", "Belagavi"), "Hubli")

	if agg.TotalWeighted != 1.0 {
		t.Errorf("total = %.2f, want 1.00", agg.TotalWeighted)
	}
	if agg.SameRegion != 0 || agg.OtherRegion != 2 {
		t.Errorf("breakdown = %d/%d, want 0/2", agg.SameRegion, agg.OtherRegion)
	}
	if agg.AverageWeight != 0.5 {
		t.Errorf("average = %.2f, want 0.50", agg.AverageWeight)
	}
}
