// Package records owns the durable-store contract for submissions and the
// admin read/update operations on top of it.
//
// The Store interface is implemented by internal/repository/postgres. Table
// names only ever come from domain.RecordKind, so callers cannot steer SQL
// at arbitrary tables.
package records
