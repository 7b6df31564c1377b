// Package models defines the core domain models for HomeShare.
//
// # Overview
//
// HomeShare coordinates a shared household: chores and shared expenses for
// a group of people living together. The models here are plain value
// records; all computation over them lives in internal/ledger and
// internal/schedule, and all persistence in internal/storage.
//
//   - User: a registered login
//   - Household: the group sharing expenses and tasks
//   - Member: a ledger participant in a household (may be an unclaimed
//     placeholder with no linked User)
//   - Expense / SplitLine: who fronted money and who owes what
//   - Settlement: a direct repayment between two members
//   - Task: a one-off chore
//   - RecurringTemplate: a cadence that periodically generates expenses
//     or tasks
//
// # Design Principles
//
//  1. All money is an integer count of cents (int64). The ledger never
//     does floating-point arithmetic on amounts.
//  2. Dates that denote calendar days (due dates, occurrence cursors) are
//     ISO "2006-01-02" strings so lexical comparison is chronological
//     comparison.
//  3. Models use ID strings instead of pointers for relationships to
//     avoid circular references.
package models
