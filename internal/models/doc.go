// Package models defines the core domain entities for chamapool.
//
// # Entities
//
//   - Club: an investment club holding members, scheduled obligations, and a
//     pooled treasury balance
//   - ClubToken: the capability credential bound to exactly one club, required
//     for privileged operations
//   - Member: a club participant whose share count scales obligations
//   - Investment: a scheduled payment obligation with amount, due date, and
//     status
//   - User: a treasurer account for the HTTP surface (never seen by the core)
//
// # Conventions
//
//  1. All identifiers are UUID strings
//  2. All timestamps are unix milliseconds (clock values are always supplied
//     by callers, never read inside the core)
//  3. All monetary amounts are uint64 in the smallest accounting unit of a
//     single implicit currency
//  4. Relationships use ID strings instead of pointers to avoid circular
//     references
package models
