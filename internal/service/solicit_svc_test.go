package service

import (
	"testing"

	"github.com/ZeNGrooT147/Campus-Bus-Assistant-sub001/internal/model"
)

func responses(entries map[string]string) []model.TicketResponse {
	out := make([]model.TicketResponse, 0, len(entries))
	for driverID, response := range entries {
		out = append(out, model.TicketResponse{TicketID: "t1", DriverID: driverID, Response: response})
	}
	return out
}

func TestSolicited(t *testing.T) {
	rs := responses(map[string]string{
		"d1": model.ResponsePending,
		"d2": model.ResponseDeclined,
	})

	if !Solicited(rs, "d1") {
		t.Error("d1 should be solicited")
	}
	if !Solicited(rs, "d2") {
		t.Error("d2 should be solicited")
	}
	if Solicited(rs, "d3") {
		t.Error("d3 was never on the ticket")
	}
}

func TestAllDeclined_LastDeclinerTriggers(t *testing.T) {
	// d3 is declining now; d1 and d2 already declined.
	rs := responses(map[string]string{
		"d1": model.ResponseDeclined,
		"d2": model.ResponseDeclined,
		"d3": model.ResponsePending,
	})

	if !AllDeclined(rs, "d3") {
		t.Error("all drivers declined once d3's decline lands; should escalate")
	}
}

func TestAllDeclined_PendingDriversRemain(t *testing.T) {
	rs := responses(map[string]string{
		"d1": model.ResponseDeclined,
		"d2": model.ResponsePending,
		"d3": model.ResponsePending,
	})

	if AllDeclined(rs, "d3") {
		t.Error("d2 is still pending; must not escalate yet")
	}
}

func TestAllDeclined_SingleDriver(t *testing.T) {
	rs := responses(map[string]string{
		"d1": model.ResponsePending,
	})

	if !AllDeclined(rs, "d1") {
		t.Error("sole driver declining exhausts the ticket")
	}
}

func TestAllDeclined_AcceptedEntryBlocks(t *testing.T) {
	// An accepted entry means the ticket is already closed, but the
	// predicate alone must still answer correctly.
	rs := responses(map[string]string{
		"d1": model.ResponseAccepted,
		"d2": model.ResponsePending,
	})

	if AllDeclined(rs, "d2") {
		t.Error("an accepted entry is not a decline")
	}
}
