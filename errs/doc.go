// Package errs defines the closed set of error kinds the Draken core
// returns. Every kernel surfaces errors synchronously through a returned
// error value; there is no retry, no side-channel logging, no partial
// result.
package errs
