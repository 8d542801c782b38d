// Package fallback invokes an LLM extraction strategy when the local
// table parse found nothing, and merges its lower-confidence result into
// the normalized output without overwriting locally-found values.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"wealthscribe/pkg/core/llm"
	"wealthscribe/pkg/core/utils"
	"wealthscribe/pkg/models"
)

// ErrResponseUnparseable means no JSON object could be recovered from the
// model response. Absorbed by the caller as an empty fallback result.
var ErrResponseUnparseable = errors.New("llm response contains no parseable JSON object")

const systemPrompt = `You are an expert financial analyst extracting figures from quarterly statements. Respond with a single JSON object and nothing else.`

const extractionPrompt = `Identify the latest quarter's financial data and annual data, and extract values for:
1. Revenue
2. Operating Profit
3. Net Profit
4. Financial Unit (Crores, Lakhs, Millions, Billions)
5. Company Name
Search for the heading "Statement of" and find the latest quarter and annual financial data (column marked with 'year ended').
The financial unit is usually mentioned above the table.
Provide output in JSON:
{
  "Company Name": "Detected company name",
  "Current Quarter": {
    "Revenue": X,
    "Operating Profit": Y,
    "Net Profit": Z,
    "Unit": "Detected financial unit"
  },
  "Annual Data": {
    "Year": "YYYY",
    "Revenue": D,
    "Operating Profit": E,
    "Net Profit": F,
    "Unit": "Detected financial unit"
  }
}
Numeric fields may be null when a value is not present.
Text to analyze:
%s`

// response mirrors the JSON shape the extraction prompt asks for.
type response struct {
	CompanyName    string         `json:"Company Name"`
	CurrentQuarter *periodFigures `json:"Current Quarter"`
	AnnualData     *annualFigures `json:"Annual Data"`
}

type periodFigures struct {
	Revenue         *float64 `json:"Revenue"`
	OperatingProfit *float64 `json:"Operating Profit"`
	NetProfit       *float64 `json:"Net Profit"`
	Unit            string   `json:"Unit"`
}

type annualFigures struct {
	Year string `json:"Year"`
	periodFigures
}

// Extractor runs the LLM extraction strategy.
type Extractor struct {
	Provider llm.Provider
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{Provider: provider}
}

// Run sends the document text to the model and merges whatever it returns
// into fin, setting only fields that are still unset. The company name is
// the one exception: a name provided by the model replaces the detected
// one. An unparseable response degrades to no result; a network failure
// propagates as llm.ErrUnavailable so callers can distinguish "the model
// was unreachable" from "the document holds no data".
func (e *Extractor) Run(ctx context.Context, documentText string, fin *models.ExtractedFinancials) error {
	raw, err := e.Provider.GenerateResponse(ctx, fmt.Sprintf(extractionPrompt, documentText), systemPrompt, nil)
	if err != nil {
		return fmt.Errorf("fallback extraction call: %w", err)
	}

	parsed, err := parseResponse(raw)
	if err != nil {
		log.Printf("[Fallback] %v, treating as empty result", err)
		return nil
	}

	merge(parsed, fin)
	return nil
}

// parseResponse recovers the first brace-delimited JSON object from the
// model output and decodes it leniently.
func parseResponse(raw string) (*response, error) {
	obj, ok := utils.ExtractJSONObject(raw)
	if !ok {
		return nil, ErrResponseUnparseable
	}

	var parsed response
	if err := utils.SmartUnmarshal(obj, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseUnparseable, err)
	}
	return &parsed, nil
}

// merge applies the fill-if-absent policy field by field.
func merge(parsed *response, fin *models.ExtractedFinancials) {
	if parsed.CurrentQuarter != nil {
		fin.CurrentPeriod.FillIfAbsent(&models.PeriodFigures{
			Revenue:         parsed.CurrentQuarter.Revenue,
			OperatingProfit: parsed.CurrentQuarter.OperatingProfit,
			NetProfit:       parsed.CurrentQuarter.NetProfit,
			Unit:            parsed.CurrentQuarter.Unit,
		})
	}
	if parsed.AnnualData != nil {
		fin.AnnualPeriod.FillIfAbsent(&models.PeriodFigures{
			Revenue:         parsed.AnnualData.Revenue,
			OperatingProfit: parsed.AnnualData.OperatingProfit,
			NetProfit:       parsed.AnnualData.NetProfit,
			Unit:            parsed.AnnualData.Unit,
		})
		if fin.AnnualPeriod.Year == "" && parsed.AnnualData.Year != "" {
			fin.AnnualPeriod.Year = parsed.AnnualData.Year
		}
	}
	if name := strings.TrimSpace(parsed.CompanyName); name != "" {
		fin.CompanyName = name
	}
}
