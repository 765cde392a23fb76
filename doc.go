// Package finlit implements the financial simulation engine behind a
// gamified personal-finance learning app. It is designed to be local-first
// and deterministic: a single user drives a wallet through lessons and
// simulations, and every rupee movement is recorded.
//
// The core functionalities include:
//   - Wallet Ledger: a single cash balance with an append-only transaction
//     log, each entry carrying before/after balance snapshots. The balance
//     may go negative; that models a missed payment, not an error.
//   - Loan Engine: EMI computation with the standard amortization formula,
//     loan disbursal, and period-by-period repayment until payoff.
//   - Portfolio Engine: per-symbol share holdings with buy/sell operations
//     that move funds through the ledger atomically.
//   - Tax Tables: the new and (simplified) old Indian income-tax regimes,
//     reproduced exactly as the learning content teaches them.
//   - State Persistence: one JSON blob per account holding user, wallet,
//     progress and achievements; a malformed blob degrades to the default
//     starting state.
//
// This package serves as the foundational logic for the sim package (the
// period-based simulations), the advisor package (AI coaching), and the
// `fin` command-line tool.
package finlit
