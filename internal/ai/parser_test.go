package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/logger"
)

func TestMatchRepayment(t *testing.T) {
	tests := []struct {
		in       string
		ok       bool
		credit   bool
		creditor string
		amount   int64
	}{
		{in: "Ramesh paid 1000", ok: true, credit: false, creditor: "Ramesh", amount: 1000},
		{in: "ramesh PAID 1000", ok: true, credit: false, creditor: "Ramesh", amount: 1000},
		{in: "Paid Dal Vendor 1250", ok: true, credit: true, creditor: "Dal Vendor", amount: 1250},
		{in: "paid 500", ok: true, credit: true, creditor: "", amount: 500},
		{in: "Ramesh paid 10.5", ok: false},
		{in: "2 colgate 120", ok: false},
		{in: "paid rent", ok: false},
		{in: "1000", ok: false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := MatchRepayment(tc.in)
			require.Equal(t, tc.ok, ok)
			if !ok {
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, RepaymentProduct, got[0].Product)
			assert.Equal(t, tc.credit, got[0].Credit)
			assert.Equal(t, tc.creditor, got[0].Creditor)
			assert.True(t, got[0].Revenue.Equal(decimal.NewFromInt(tc.amount)))
			assert.Zero(t, got[0].Units)
		})
	}
}

func TestDecodeItems(t *testing.T) {
	items, err := decodeItems(`{"items":[{"product":"Colgate","units":2,"revenue":120,"credit":false,"creditor":""}]}`)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Colgate", items[0].Product)

	items, err = decodeItems("Sure! {\"items\":[]} hope this helps")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = decodeItems("no json here")
	assert.True(t, errors.Is(err, core.ErrParseFailure))

	_, err = decodeItems(`{"entries":[]}`)
	assert.True(t, errors.Is(err, core.ErrParseFailure))
}

func TestSchemaFor(t *testing.T) {
	schema, err := schemaFor(parsedMessage{})
	require.NoError(t, err)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "items")
}

func TestParser_RulesWithoutModel(t *testing.T) {
	p := NewParser("", "", logger.Nop())

	got, err := p.Parse(context.Background(), "Ramesh paid 1000")
	require.NoError(t, err)
	assert.Equal(t, "Ramesh", got[0].Creditor)

	_, err = p.Parse(context.Background(), "2 colgate 120")
	assert.True(t, errors.Is(err, core.ErrParseFailure))

	_, err = p.Parse(context.Background(), "   ")
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestParser_ModelFallback(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		text := `{"items":[{"product":" Colgate ","units":2,"revenue":120,"credit":true,"creditor":"Suresh"}]}`
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "resp_1",
			"object": "response",
			"status": "completed",
			"output": []any{map[string]any{
				"type":   "message",
				"id":     "msg_1",
				"role":   "assistant",
				"status": "completed",
				"content": []any{map[string]any{
					"type":        "output_text",
					"text":        text,
					"annotations": []any{},
				}},
			}},
		})
	}))
	defer srv.Close()

	p := NewParser("sk-test", "gpt-4o-mini", logger.Nop(),
		option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))

	got, err := p.Parse(context.Background(), "2 colgate 120 suresh")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Colgate", got[0].Product)
	assert.Equal(t, 2, got[0].Units)
	assert.True(t, got[0].Revenue.Equal(decimal.NewFromInt(120)))
	assert.True(t, got[0].Credit)
	assert.Equal(t, "Suresh", got[0].Creditor)

	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	assert.Equal(t, "2 colgate 120 suresh", gotBody["input"])
}

func TestParser_ModelError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	p := NewParser("sk-test", "", logger.Nop(), option.WithBaseURL(srv.URL+"/"), option.WithMaxRetries(0))
	_, err := p.Parse(context.Background(), "2 colgate 120")
	assert.Error(t, err)
}
