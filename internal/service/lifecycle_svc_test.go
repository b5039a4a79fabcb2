package service

import (
	"testing"
	"time"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

const testThreshold = 25.0

func TestDecide_BelowThresholdStaysActive(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)

	if d := Decide(model.StatusActive, 3.0, deadline, now, testThreshold); d != DecideNone {
		t.Errorf("decision = %v, want DecideNone", d)
	}
}

func TestDecide_ThresholdExactlyReached(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)

	if d := Decide(model.StatusActive, 25.0, deadline, now, testThreshold); d != DecideThreshold {
		t.Errorf("decision at exactly 25.0 = %v, want DecideThreshold", d)
	}
}

func TestDecide_ThresholdAboveReached(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)

	if d := Decide(model.StatusActive, 31.5, deadline, now, testThreshold); d != DecideThreshold {
		t.Errorf("decision = %v, want DecideThreshold", d)
	}
}

func TestDecide_PastDeadlineExpires(t *testing.T) {
	now := time.Now()
	deadline := now.Add(-time.Minute)

	if d := Decide(model.StatusActive, 10.0, deadline, now, testThreshold); d != DecideExpire {
		t.Errorf("decision = %v, want DecideExpire", d)
	}
}

func TestDecide_ExpiryBeatsThreshold(t *testing.T) {
	// Votes crossing the threshold after the deadline cannot resurrect
	// the request: expiry wins.
	now := time.Now()
	deadline := now.Add(-time.Minute)

	if d := Decide(model.StatusActive, 30.0, deadline, now, testThreshold); d != DecideExpire {
		t.Errorf("decision = %v, want DecideExpire", d)
	}
}

func TestDecide_AtDeadlineStillCounts(t *testing.T) {
	// now == deadline is within the voting period (expiry requires
	// now > deadline).
	now := time.Now()

	if d := Decide(model.StatusActive, 25.0, now, now, testThreshold); d != DecideThreshold {
		t.Errorf("decision at deadline instant = %v, want DecideThreshold", d)
	}
}

func TestDecide_ZeroVotesNeverThreshold(t *testing.T) {
	now := time.Now()
	deadline := now.Add(time.Hour)

	if d := Decide(model.StatusActive, 0, deadline, now, testThreshold); d != DecideNone {
		t.Errorf("decision = %v, want DecideNone", d)
	}
}

func TestDecide_NonActiveStatusesAreNoOps(t *testing.T) {
	now := time.Now()
	pastDeadline := now.Add(-time.Hour)

	statuses := []string{
		model.StatusThresholdReached,
		model.StatusDriverAssigned,
		model.StatusApproved,
		model.StatusRejected,
		model.StatusExpired,
	}
	for _, status := range statuses {
		if d := Decide(status, 100.0, pastDeadline, now, testThreshold); d != DecideNone {
			t.Errorf("status %s: decision = %v, want DecideNone (evaluation is idempotent)", status, d)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []string{model.StatusApproved, model.StatusRejected, model.StatusExpired}
	for _, status := range terminal {
		if !model.IsTerminal(status) {
			t.Errorf("IsTerminal(%s) = false, want true", status)
		}
	}

	open := []string{model.StatusActive, model.StatusThresholdReached, model.StatusDriverAssigned}
	for _, status := range open {
		if model.IsTerminal(status) {
			t.Errorf("IsTerminal(%s) = true, want false", status)
		}
	}
}
