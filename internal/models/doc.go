// Package models defines the core domain models for Rumba.
//
// # Models
//
//   - User: Registered account that owns events
//   - Event: A recurring or one-time booking with its venue deal terms
//   - Expense: A cost line item belonging to exactly one event
//
// # Design Principles
//
//  1. **Explicit enums**: event type, deal type, payment terms, status,
//     expense category and payment method are closed sets validated at the
//     boundary, never free strings passed through to SQL.
//  2. **Schedule fields follow the event type**: weekly events carry a day of
//     week, monthly and one-time events carry a calendar date. Exactly one of
//     the two is populated.
//  3. **Exact money**: amounts are decimals with two fractional digits, not
//     floats. The Money type handles JSON and SQL conversions.
//  4. **Avoid circular references**: models reference each other by ID string;
//     the only embedded relation is Event.Expenses on read paths.
package models
