// Package typeid defines Draken's closed logical-type enumeration and the
// mapping between that enumeration and Arrow's own type system.
package typeid
