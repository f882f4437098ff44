package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/lmartinez/cardreport/internal/common"
	"github.com/lmartinez/cardreport/internal/model"
)

// DefaultGeminiModel is fast and reliable on statement tables.
const DefaultGeminiModel = "gemini-2.0-flash"

const statementPrompt = `The attached PDF is a monthly credit-card statement.
Extract every row of the card movements table.

For each transaction return:
- "date": the transaction date as "DD/MM/YYYY".
- "concept": the full operation description.
- "amount": the exact amount as printed, keeping its locale formatting.

Sign rules for "amount":
- Purchases, fees and any other charge/debit must be POSITIVE.
- Card payments, refunds and any other credit must be NEGATIVE.
- If the statement separates debit and credit columns, apply the rule from
  the column the value appears in.
- Insurance charges such as "SEGURO SALDO DEUDOR" are always debits; use the
  numeric value printed next to that concept, never a date.

Output STRICT JSON only: a single array of objects with exactly the fields
"date", "concept" and "amount" (all strings). No commentary, no Markdown,
no code fences.`

// GeminiExtractor asks Gemini to segment a statement PDF into raw records.
// Credentials come from the environment (GEMINI_API_KEY / GOOGLE_API_KEY),
// carried by the genai client itself.
type GeminiExtractor struct {
	client *genai.Client
	model  string
}

// NewGeminiExtractor creates the extraction client. An empty model selects
// DefaultGeminiModel.
func NewGeminiExtractor(ctx context.Context, modelName string) (*GeminiExtractor, error) {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating client: %v", ErrAIService, err)
	}

	return &GeminiExtractor{client: client, model: modelName}, nil
}

// statementRow mirrors the JSON objects the prompt requests.
type statementRow struct {
	Date    string `json:"date"`
	Concept string `json:"concept"`
	Amount  string `json:"amount"`
}

// ExtractTransactions sends the PDF inline and decodes the model's JSON
// array into structured raw records. Models occasionally ignore the
// no-fences instruction, so a wrapping Markdown code fence is stripped
// before decoding.
func (g *GeminiExtractor) ExtractTransactions(ctx context.Context, pdf []byte) ([]model.RawRecord, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: statementPrompt},
				{
					InlineData: &genai.Blob{
						MIMEType: "application/pdf",
						Data:     pdf,
					},
				},
			},
		},
	}

	var resp *genai.GenerateContentResponse
	err := common.WithRetry(ctx, func() error {
		r, genErr := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
		if genErr != nil {
			return genErr
		}
		resp = r
		return nil
	}, common.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAIService, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty model response", ErrAIService)
	}

	var rows []statementRow
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &rows); err != nil {
		return nil, fmt.Errorf("%w: decoding model response: %v", ErrAIService, err)
	}

	records := make([]model.RawRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.NewStructuredRecord(row.Date, row.Concept, row.Amount))
	}
	return records, nil
}

// stripCodeFence unwraps a response wrapped in ``` or ```json fences and
// returns the inner text trimmed.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
