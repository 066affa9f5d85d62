// Package convert selects and runs converters between runtime types.
//
// A Registry holds Descriptors. For a request (in, out) a descriptor matches
// when in is assignable to its Input, its Output is assignable to out, and its
// optional Accepts predicate agrees. Matches are ranked by:
//
//  1. Priority, highest first
//  2. Specificity, exact types before assignable types before interfaces
//  3. Registration order
//
// The Engine runs only the first-ranked converter. Its failure, including a
// panic or a result that does not fit the target, is returned as a
// conversion_failed error that wraps the cause; lower-ranked candidates are
// never tried.
//
//	e, err := convert.New()
//	if err != nil {
//		return err
//	}
//	c, err := convert.ConvertTo[*array.Array[int32]](e, []int32{1, 2, 3})
//
// New registers the primitive array converters from the kind table unless
// WithBuiltins(false) is given.
package convert
