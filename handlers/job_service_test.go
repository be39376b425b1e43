package handlers

import (
	"testing"

	"github.com/google/uuid"
	"p9e.in/homepro/models"
)

func quoteWith(status models.QuoteStatus) models.Quote {
	return models.Quote{ID: uuid.New(), Status: status}
}

func TestQuotesToReject(t *testing.T) {
	accepted := quoteWith(models.QuoteStatusPending)
	pending1 := quoteWith(models.QuoteStatusPending)
	pending2 := quoteWith(models.QuoteStatusPending)
	withdrawn := quoteWith(models.QuoteStatusWithdrawn)
	rejected := quoteWith(models.QuoteStatusRejected)

	all := []models.Quote{accepted, pending1, withdrawn, pending2, rejected}
	losers := QuotesToReject(all, accepted.ID)

	if len(losers) != 2 {
		t.Fatalf("expected 2 quotes to reject, got %d", len(losers))
	}
	got := map[uuid.UUID]bool{}
	for _, id := range losers {
		got[id] = true
	}
	if !got[pending1.ID] || !got[pending2.ID] {
		t.Error("both competing pending quotes should be rejected")
	}
	if got[accepted.ID] {
		t.Error("the accepted quote must not be rejected")
	}
	if got[withdrawn.ID] || got[rejected.ID] {
		t.Error("withdrawn and rejected quotes must keep their status")
	}
}

func TestQuotesToRejectSingleQuote(t *testing.T) {
	only := quoteWith(models.QuoteStatusPending)
	if losers := QuotesToReject([]models.Quote{only}, only.ID); len(losers) != 0 {
		t.Errorf("accepting the only quote should reject nothing, got %d", len(losers))
	}
}

func TestQuotesToRejectEmpty(t *testing.T) {
	if losers := QuotesToReject(nil, uuid.New()); len(losers) != 0 {
		t.Errorf("no quotes means nothing to reject, got %d", len(losers))
	}
}
