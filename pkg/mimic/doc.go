// Package mimic provides a local, in-process stand-in for a remote managed
// relational database service, backed by an embedded SQLite engine.
//
// Application code written against the managed service's client contract
// (prepared statements with positional binding, batch execution, raw row
// access, sessions, whole-database serialization) runs against a Database in
// tests without a network or a separate server process.
//
// A Database owns a single engine connection. Statements prepared from it
// translate the engine's native call shapes into the service's result
// envelope. Bootstrap builds a ready-to-use in-memory database from a
// directory of migration files.
package mimic
