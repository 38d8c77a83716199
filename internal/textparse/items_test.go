package textparse

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseInvoiceItem(t *testing.T) {
	tests := []struct {
		in        string
		desc      string
		price     string
		gst       string
		wantMatch bool
	}{
		{"5kg Atta - 450 - 5", "5kg Atta", "450", "5", true},
		{"5kg Atta | 450 | 5%", "5kg Atta", "450", "5", true},
		{"Rice,99.50,12%", "Rice", "99.5", "12", true},
		{"Mixed sep - 10 , 18", "Mixed sep", "10", "18", true},
		{"just words", "", "", "", false},
		{"Atta - 450", "", "", "", false},
		{"Atta - abc - 5", "", "", "", false},
		{"- 450 - 5", "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			item, ok := ParseInvoiceItem(tt.in)
			if ok != tt.wantMatch {
				t.Fatalf("ok = %v, want %v (item %+v)", ok, tt.wantMatch, item)
			}
			if !ok {
				return
			}
			if item.Description != tt.desc {
				t.Errorf("description = %q, want %q", item.Description, tt.desc)
			}
			if !item.Price.Equal(decimal.RequireFromString(tt.price)) {
				t.Errorf("price = %s, want %s", item.Price, tt.price)
			}
			if !item.GSTPercent.Equal(decimal.RequireFromString(tt.gst)) {
				t.Errorf("gst = %s, want %s", item.GSTPercent, tt.gst)
			}
		})
	}
}
