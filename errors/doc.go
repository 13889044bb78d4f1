/*
Package errors implements the error model used across lockbox.

Every failure returned by a handler must wrap one of the root errors
created with Register. The root error decides the ABCI code a client
receives, so extensions declare their own roots only when none of the
common ones below describes the failure.

Create instances close to where the problem is detected, using
ErrXyz.New, ErrXyz.Newf or Wrap. The innermost wrap attaches a stack
trace that can be printed with "%+v".

Classify an error with the root it wraps:

	if errors.ErrNotFound.Is(err) {
		...
	}
*/
package errors
