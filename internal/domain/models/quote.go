package models

import "time"

// Quote represents one daily bar of an instrument, as exported by Yahoo
// Finance ("Download" CSV) and stored in the daily_quotes table.
//
// Column order of the CSV export:
//  1. Date
//  2. Open
//  3. High
//  4. Low
//  5. Close
//  6. Adj Close
//  7. Volume
//
// AdjClose is the closing price the analysis runs on.
type Quote struct {
	Ticker    string
	TradeDate time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	AdjClose  float64
	Volume    int64
}
