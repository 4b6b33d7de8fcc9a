package ticketing

import (
	"strings"
	"testing"
)

func TestTicketTokenID(t *testing.T) {
	id := TicketTokenID("spring-fest", "ga")
	if !strings.HasPrefix(id, "0x") || len(id) != 66 {
		t.Fatalf("id = %q, want a 32-byte hex hash", id)
	}
	if id != TicketTokenID("spring-fest", "ga") {
		t.Error("id not deterministic")
	}
	if id == TicketTokenID("spring-fest", "vip") {
		t.Error("different tiers share an id")
	}
	if id == TicketTokenID("autumn-fest", "ga") {
		t.Error("different events share an id")
	}
}
