// Package model defines the core domain models used throughout the application.
package model

// Transaction represents a single normalized credit-card movement.
//
// Sign convention: positive amounts are debits (purchases, fees), negative
// amounts are credits (card payments, refunds). Both ingestion paths convert
// to this convention before a Transaction is built.
type Transaction struct {
	Date    string  `json:"date"`    // YYYY-MM-DD
	Concept string  `json:"concept"` // raw statement description
	Amount  float64 `json:"amount"`
}
