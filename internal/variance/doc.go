// Package variance encodes producer/consumer substitution rules for generic
// containers.
//
// Ownership boundary:
// - read-only producer and write-only consumer views
// - the invariant List container
// - copy helpers that take a covariant read type and a contravariant write type
//
// Go has no declaration-site variance, so the rules live in method sets: a
// Producer[T] exposes no method that accepts a T and a Consumer[T] exposes no
// method that returns one. Substituting a container of a related element type
// goes through Out or In with an explicit widening function, which only
// compiles when the element types are actually related.
package variance
