// Package indicators derives technical indicators from price history so
// that ideas arriving without precomputed technicals can still be scored.
package indicators

import (
	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/aristath/foresight/internal/domain"
)

const (
	rsiPeriod     = 14
	shortMAPeriod = 50
	longMAPeriod  = 200

	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9
)

// Deriver computes technical indicators from adjusted close history.
type Deriver struct {
	log zerolog.Logger
}

// NewDeriver creates a new indicator deriver
func NewDeriver(log zerolog.Logger) *Deriver {
	return &Deriver{
		log: log.With().Str("component", "indicators").Logger(),
	}
}

// Derive computes RSI(14), SMA(50), SMA(200) and MACD(12,26,9) from the
// investment's history. It returns nil when the history is too short for the
// longest lookback; partial indicator sets are never produced.
func (d *Deriver) Derive(inv domain.Investment) *domain.TechnicalIndicators {
	if len(inv.History) < longMAPeriod {
		return nil
	}

	closes := make([]float64, len(inv.History))
	for i, bar := range inv.History {
		closes[i] = bar.AdjClose
	}

	rsi := talib.Rsi(closes, rsiPeriod)
	ma50 := talib.Sma(closes, shortMAPeriod)
	ma200 := talib.Sma(closes, longMAPeriod)
	macd, signal, _ := talib.Macd(closes, macdFast, macdSlow, macdSignal)

	last := len(closes) - 1
	return &domain.TechnicalIndicators{
		RSI:        rsi[last],
		MA50:       ma50[last],
		MA200:      ma200[last],
		MACD:       macd[last],
		MACDSignal: signal[last],
	}
}

// Enrich returns a copy of the idea in which every investment missing
// technicals has them derived from its history where possible. The input is
// not mutated.
func (d *Deriver) Enrich(idea domain.InvestmentIdea) domain.InvestmentIdea {
	enriched := idea
	enriched.Investments = make([]domain.Investment, len(idea.Investments))
	copy(enriched.Investments, idea.Investments)

	for i := range enriched.Investments {
		if enriched.Investments[i].Technicals != nil {
			continue
		}
		if derived := d.Derive(enriched.Investments[i]); derived != nil {
			enriched.Investments[i].Technicals = derived
			d.log.Debug().
				Str("investment", enriched.Investments[i].ID).
				Msg("Derived technical indicators from history")
		}
	}
	return enriched
}
