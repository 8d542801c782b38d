// Package models defines the normalized financial data contract produced
// by the extraction pipeline and consumed by the API layer and assistant.
package models

import (
	"fmt"
	"strings"
)

// LineItem identifies a canonical financial line item.
type LineItem string

const (
	LineItemRevenue         LineItem = "REVENUE"
	LineItemOperatingProfit LineItem = "OPERATING_PROFIT"
	LineItemNetProfit       LineItem = "NET_PROFIT"
)

// ReportingPeriod is a fiscal quarter derived from dates found in the
// document text. It is never persisted beyond a single extraction run.
type ReportingPeriod struct {
	Quarter int `json:"quarter"` // 1..4
	Year    int `json:"year"`
}

// Label renders the period in the "Q3 2024" display form.
func (p ReportingPeriod) Label() string {
	return fmt.Sprintf("Q%d %d", p.Quarter, p.Year)
}

// PeriodFigures holds the three canonical figures for one reporting
// interval. Nil means the field was never populated by any strategy.
type PeriodFigures struct {
	Revenue         *float64 `json:"Revenue"`
	OperatingProfit *float64 `json:"Operating Profit"`
	NetProfit       *float64 `json:"Net Profit"`
	Unit            string   `json:"Unit"`
}

// IsEmpty reports whether no financial field has been populated.
func (f *PeriodFigures) IsEmpty() bool {
	return f.Revenue == nil && f.OperatingProfit == nil && f.NetProfit == nil
}

// Set assigns the value for the given line item, overwriting any earlier
// value. Within a single table pass a later matching row wins.
func (f *PeriodFigures) Set(item LineItem, v *float64) {
	switch item {
	case LineItemRevenue:
		f.Revenue = v
	case LineItemOperatingProfit:
		f.OperatingProfit = v
	case LineItemNetProfit:
		f.NetProfit = v
	}
}

// Get returns the current value for the given line item.
func (f *PeriodFigures) Get(item LineItem) *float64 {
	switch item {
	case LineItemRevenue:
		return f.Revenue
	case LineItemOperatingProfit:
		return f.OperatingProfit
	case LineItemNetProfit:
		return f.NetProfit
	}
	return nil
}

// FillIfAbsent copies each field from other only where the receiver has no
// value yet. Values found by the local table parse are higher confidence
// than fallback results and must never be overwritten.
func (f *PeriodFigures) FillIfAbsent(other *PeriodFigures) {
	if other == nil {
		return
	}
	if f.Revenue == nil {
		f.Revenue = other.Revenue
	}
	if f.OperatingProfit == nil {
		f.OperatingProfit = other.OperatingProfit
	}
	if f.NetProfit == nil {
		f.NetProfit = other.NetProfit
	}
	if f.Unit == "" {
		f.Unit = other.Unit
	}
}

// AnnualFigures extends PeriodFigures with the fiscal year label of the
// "year ended" column.
type AnnualFigures struct {
	Year string `json:"Year"`
	PeriodFigures
}

// ExtractedFinancials is the normalized output of one extraction run.
// It is mutated additively through the pipeline stages and treated as
// read-only once returned to the caller.
type ExtractedFinancials struct {
	CompanyName    string        `json:"Company Name"`
	CurrentPeriod  PeriodFigures `json:"Current Quarter"`
	AnnualPeriod   AnnualFigures `json:"Annual Data"`
	LatestPeriod   string        `json:"Latest Period,omitempty"`
	PreviousPeriod string        `json:"Previous Period,omitempty"`
}

// IsEmpty reports whether both periods carry no financial figures at all.
func (e *ExtractedFinancials) IsEmpty() bool {
	return e.CurrentPeriod.IsEmpty() && e.AnnualPeriod.IsEmpty()
}

// Verdict returns a one-line profit/loss assessment for the dashboard
// banner, or "" when net profit is unknown.
func (e *ExtractedFinancials) Verdict() string {
	if e.CurrentPeriod.NetProfit == nil {
		return ""
	}
	name := e.CompanyName
	if name == "" {
		name = "The company"
	}
	if *e.CurrentPeriod.NetProfit >= 0 {
		return fmt.Sprintf("%s is in Profit", name)
	}
	return fmt.Sprintf("%s is in Loss", name)
}

// Summary renders the extracted data as a plain-text block used both as
// LLM grounding context for the assistant and as the persisted digest.
func (e *ExtractedFinancials) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Financial data for %s:\n\n", orUnknown(e.CompanyName, "Unknown Company"))
	b.WriteString("Current Quarter Data:\n")
	fmt.Fprintf(&b, "- Revenue: %s %s\n", fmtValue(e.CurrentPeriod.Revenue), e.CurrentPeriod.Unit)
	fmt.Fprintf(&b, "- Operating Profit: %s %s\n", fmtValue(e.CurrentPeriod.OperatingProfit), e.CurrentPeriod.Unit)
	fmt.Fprintf(&b, "- Net Profit: %s %s\n", fmtValue(e.CurrentPeriod.NetProfit), e.CurrentPeriod.Unit)
	b.WriteString("\nAnnual Data:\n")
	fmt.Fprintf(&b, "- Year: %s\n", orUnknown(e.AnnualPeriod.Year, "Unknown Year"))
	fmt.Fprintf(&b, "- Revenue: %s %s\n", fmtValue(e.AnnualPeriod.Revenue), e.AnnualPeriod.Unit)
	fmt.Fprintf(&b, "- Operating Profit: %s %s\n", fmtValue(e.AnnualPeriod.OperatingProfit), e.AnnualPeriod.Unit)
	fmt.Fprintf(&b, "- Net Profit: %s %s\n", fmtValue(e.AnnualPeriod.NetProfit), e.AnnualPeriod.Unit)
	return b.String()
}

func fmtValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func orUnknown(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// ExtractionError is the 404-style error object surfaced to the caller
// when no financial data could be found by any strategy.
type ExtractionError struct {
	ErrorStatus int    `json:"errorStatus"`
	Message     string `json:"message"`
}
