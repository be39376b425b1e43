package models

import (
	"encoding/json"
	"testing"
)

func TestMetadataJSON(t *testing.T) {
	t.Run("nil encodes as empty object", func(t *testing.T) {
		if got := string(MetadataJSON(nil)); got != "{}" {
			t.Errorf("MetadataJSON(nil) = %s, expected {}", got)
		}
	})

	t.Run("empty map encodes as empty object", func(t *testing.T) {
		if got := string(MetadataJSON(map[string]string{})); got != "{}" {
			t.Errorf("MetadataJSON(empty) = %s, expected {}", got)
		}
	})

	t.Run("entity ids survive the round trip", func(t *testing.T) {
		in := map[string]string{
			"quote_id":   "6f1a3c0e-0000-4000-8000-000000000001",
			"booking_id": "6f1a3c0e-0000-4000-8000-000000000002",
		}
		var out map[string]string
		if err := json.Unmarshal(MetadataJSON(in), &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(out) != 2 || out["quote_id"] != in["quote_id"] || out["booking_id"] != in["booking_id"] {
			t.Errorf("got %v, expected %v", out, in)
		}
	})
}
