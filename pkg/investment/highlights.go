package investment

import (
	"cmp"
	"slices"

	"github.com/finboard/finboard/pkg/money"
	"github.com/shopspring/decimal"
)

const maxTopPerformers = 3

type Totals struct {
	Invested         decimal.Decimal `json:"invested"`
	Current          decimal.Decimal `json:"current"`
	Profit           decimal.Decimal `json:"profit"`
	ProfitPercentage decimal.Decimal `json:"profitPercentage"`
}

type Highlight struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Type        Type           `json:"type"`
	Currency    money.Currency `json:"currency"`
	Performance Performance    `json:"performance"`
}

// Highlights is the portfolio overview shown on the dashboard. Totals are kept
// per currency, amounts in different currencies are never added together.
type Highlights struct {
	Count          int                       `json:"count"`
	Totals         map[money.Currency]Totals `json:"totals"`
	TopPerformers  []Highlight               `json:"topPerformers"`
	WorstPerformer *Highlight                `json:"worstPerformer,omitempty"`
}

func (h Highlights) IsEmpty() bool {
	return h.Count == 0
}

// Summarize builds highlights from a list of investments.
func Summarize(investments []Investment) Highlights {
	result := Highlights{
		Count:         len(investments),
		Totals:        map[money.Currency]Totals{},
		TopPerformers: []Highlight{},
	}
	if len(investments) == 0 {
		return result
	}

	ranked := make([]Highlight, 0, len(investments))
	for _, inv := range investments {
		perf := inv.Performance()
		totals := result.Totals[inv.Currency]
		totals.Invested = totals.Invested.Add(perf.Initial)
		totals.Current = totals.Current.Add(perf.Current)
		result.Totals[inv.Currency] = totals
		ranked = append(ranked, Highlight{
			Id:          inv.Id,
			Name:        inv.Name,
			Type:        inv.Type,
			Currency:    inv.Currency,
			Performance: perf,
		})
	}
	for c, totals := range result.Totals {
		totals.Profit = totals.Current.Sub(totals.Invested)
		totals.ProfitPercentage = money.Percentage(totals.Profit, totals.Invested)
		result.Totals[c] = totals
	}

	slices.SortStableFunc(ranked, func(a, b Highlight) int {
		return cmp.Or(
			b.Performance.ProfitPercentage.Cmp(a.Performance.ProfitPercentage),
			cmp.Compare(a.Name, b.Name),
		)
	})
	result.TopPerformers = ranked[:min(maxTopPerformers, len(ranked))]
	if worst := ranked[len(ranked)-1]; worst.Performance.Profit.IsNegative() {
		result.WorstPerformer = &worst
	}
	return result
}
