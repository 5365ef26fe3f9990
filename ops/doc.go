// Package ops resolves binary operator kernels for pairs of vector types.
//
// It mirrors the original core/ops.h and ops_impl.cpp: a stable numeric
// Kind enumeration, a type-compatibility check run before any kernel is
// looked up, and a scalarity rule (a scalar left operand paired with a
// vector right operand is never resolvable). Where the C prototype left
// get_op's dispatch table as a stub returning NULL, GetOp here resolves to
// real kernels already defined on the concrete vector types.
package ops
