package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
)

// EntryParser turns a shopkeeper's free-text message into candidate entries.
type EntryParser interface {
	Parse(ctx context.Context, message string) ([]core.Candidate, error)
}

const systemPrompt = `You are a strict JSON parser. Return ONLY a JSON object with an 'items' array.
Each item must have: product (string), units (number), revenue (number), credit (boolean), creditor (string).
Use an empty string for a missing product or creditor.

SALES RULES:
- Parse sales like '1 kg garam masala 250 rs', '500 gm haldi masala 250 rs suresh', '1000 rs ramesh'.
- If a PERSON NAME appears it is a CREDIT SALE (credit=true, creditor=name). If no name it is a CASH SALE (credit=false).
- Price accepts '250', '250 rs', '₹250', etc.
- IMPORTANT: If the input is ONLY a number (e.g. "1000", "-250") with no product or units:
  product = "", units = 0, revenue = that number, credit = false, creditor = "".

UNITS RULES:
- If the user explicitly writes units (e.g. "2 colgate", "50 unit maggi pack") use that number.
- "pair" means units=2, "single" means units=1.
- Weights or sizes like "500 gm", "1 kg" stay in the product string with units=1.
- Otherwise, with no explicit unit, units=0.

EXPENSE RULES:
- Expenses always have NEGATIVE revenue.
- '-1250 rs Dal vendor cash' is an expense paid immediately.
- '-1250 rs Dal vendor' (no 'cash') is an expense payable.
- If the vendor is missing: product="", credit=true, creditor="".
- Keywords like rent, electricity, expense are expenses even without a leading '-'.

REPAYMENT RULES:
- "Ramesh paid 1000" is a customer repayment: {"product": "", "units": 0, "revenue": 1000, "credit": false, "creditor": "Ramesh"}
- "Paid Dal Vendor 1250" is a vendor repayment: {"product": "", "units": 0, "revenue": -1250, "credit": false, "creditor": "Dal Vendor"}

NAMES VS TOKENS:
- Ignore tokens: rs, inr, rupee, ₹, unit, units, kg, gm, g, litre, liter, l, ml, pack, packs, packet, pair, single, of, cash, paid, to.
- Names are alphabetic tokens not in the above list. Join multiple trailing words as the creditor.`

// parsedItem is the model-facing shape of one entry.
type parsedItem struct {
	Product  string  `json:"product" jsonschema_description:"Product sold or expense head; empty when none"`
	Units    float64 `json:"units" jsonschema_description:"Explicit unit count, 0 when not stated"`
	Revenue  float64 `json:"revenue" jsonschema_description:"Amount in rupees; negative for expenses"`
	Credit   bool    `json:"credit" jsonschema_description:"True when the amount is owed rather than settled"`
	Creditor string  `json:"creditor" jsonschema_description:"Customer or vendor name; empty when none"`
}

type parsedMessage struct {
	Items []parsedItem `json:"items"`
}

// Parser applies the repayment rules and falls back to an OpenAI model
// with a strict JSON schema.
type Parser struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

// NewParser builds a Parser. Without an API key only the repayment rules
// are available.
func NewParser(apiKey, model string, log zerolog.Logger, opts ...option.RequestOption) *Parser {
	p := &Parser{model: model, log: log}
	if apiKey != "" {
		client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)
		p.client = &client
	}
	if p.model == "" {
		p.model = string(shared.ChatModelGPT4oMini)
	}
	return p
}

// Parse returns the candidates found in message. Zero-amount candidates are
// passed through; the caller decides whether they are worth saving.
func (p *Parser) Parse(ctx context.Context, message string) ([]core.Candidate, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is required: %w", core.ErrInvalidInput)
	}
	if items, ok := MatchRepayment(message); ok {
		p.log.Debug().Str("rule", "repayment").Msg("message matched without model")
		return items, nil
	}
	if p.client == nil {
		return nil, fmt.Errorf("no language model configured: %w", core.ErrParseFailure)
	}

	schemaMap, err := schemaFor(parsedMessage{})
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(p.model),
		Instructions: param.NewOpt(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(message),
		},
		Temperature:     param.NewOpt(0.0),
		MaxOutputTokens: param.NewOpt(int64(300)),
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "ledger_entries",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Ledger entries parsed from a shopkeeper message"),
				},
			},
		},
	}

	resp, err := p.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty model response: %w", core.ErrParseFailure)
	}
	parsed, err := decodeItems(content)
	if err != nil {
		return nil, err
	}
	return toCandidates(parsed), nil
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// decodeItems accepts either a bare JSON object or one embedded in prose.
func decodeItems(content string) ([]parsedItem, error) {
	var raw struct {
		Items *[]parsedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		m := jsonObject.FindString(content)
		if m == "" {
			return nil, fmt.Errorf("non-JSON model response: %w", core.ErrParseFailure)
		}
		if err := json.Unmarshal([]byte(m), &raw); err != nil {
			return nil, fmt.Errorf("failed to parse model response: %w", core.ErrParseFailure)
		}
	}
	if raw.Items == nil {
		return nil, fmt.Errorf("model response missing items: %w", core.ErrParseFailure)
	}
	return *raw.Items, nil
}

func toCandidates(items []parsedItem) []core.Candidate {
	out := make([]core.Candidate, 0, len(items))
	for _, it := range items {
		out = append(out, core.Candidate{
			Product:  strings.TrimSpace(it.Product),
			Units:    int(it.Units),
			Revenue:  decimal.NewFromFloat(it.Revenue),
			Credit:   it.Credit,
			Creditor: strings.TrimSpace(it.Creditor),
		})
	}
	return out
}

func schemaFor(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
