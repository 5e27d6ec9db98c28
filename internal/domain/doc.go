// Package domain defines the submission and record types shared by the
// intake pipeline, the payment webhook and the admin area.
//
// Types in this package are pure value objects with no behavior beyond
// mapping themselves to storage rows, no database dependencies, and no HTTP
// concerns.
//
// Rules for this package:
//   - No imports from other internal/ packages
//   - No *sql.DB, no http.Request, no context.Context in struct fields
//   - JSON tags are allowed (they're metadata, not behavior)
//   - Row builders are allowed (they're pure functions on the type)
//   - Constants and enums belong here
package domain
