/*
Package errors implements custom error interfaces for billchain.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when a failure is specific to a single extension
(see x/risk, x/bill and x/oracle).

If you want to register a custom error use Register(code, description).
For reusing errors use ErrXyz.New and ErrXyz.Newf or Wrap and Wrapf.
Code stands for the ABCI error code, which allows to distinguish types of
errors on the client side and act accordingly.

Create the error using ErrXyz.New("...") or errors.Wrap(err, "...") at the
point of failure to ensure a stacktrace is attached. Only the most inner wrap
records the stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors
