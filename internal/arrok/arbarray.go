// Package arrok implements the dynamic array container described in
// spec §3.2–§3.3: a three-way owned/view/mutable-view union generic
// over element type (ArbArray[T]), and a tagged union over every
// supported element type (ArrOk) that dispatches through
// internal/dtype's category predicates.
package arrok

// Variant distinguishes the three ArbArray ownership modes (spec §3.2).
type Variant uint8

const (
	// Owned holds exclusive, heap-allocated storage.
	Owned Variant = iota
	// View is an immutable borrow. base, if non-nil, is a strong
	// reference to whatever owns the backing slice (the "view-on-base"
	// capability of spec §3.2/§9) so that holder cannot be collected
	// or reused while this view is alive.
	View
	// ViewMut is a mutable borrow. The engine's own invariant (never
	// enforced by the Go type system, only by discipline in this
	// package's constructors) is that at most one ViewMut over a given
	// backing slice is outstanding at a time.
	ViewMut
)

// ArbArray is a row-major n-dimensional array of T, carrying its
// ownership variant and (for View/ViewMut) a base holder that keeps a
// foreign buffer alive for the view's lifetime.
type ArbArray[T any] struct {
	data    []T
	shape   []int
	variant Variant
	base    any
}

// NewOwned wraps data as an exclusively-owned 1-D array.
func NewOwned[T any](data []T) *ArbArray[T] {
	return &ArbArray[T]{data: data, shape: []int{len(data)}, variant: Owned}
}

// NewOwnedShape wraps data as an exclusively-owned n-D array with the
// given row-major shape. Panics if the shape's product doesn't match
// len(data); callers are expected to validate shapes before this point,
// the same way spec §3.2 treats shape mismatches as a caller contract.
func NewOwnedShape[T any](data []T, shape []int) *ArbArray[T] {
	if size(shape) != len(data) {
		panic("arrok: shape does not match data length")
	}
	return &ArbArray[T]{data: data, shape: append([]int(nil), shape...), variant: Owned}
}

// NewView wraps data as an immutable view whose backing storage is kept
// alive by base (the "view-on-base" construct of spec §3.2/§9). base is
// typically the ArrOk or foreign object that actually owns the slice.
func NewView[T any](data []T, base any) *ArbArray[T] {
	return &ArbArray[T]{data: data, shape: []int{len(data)}, variant: View, base: base}
}

// NewViewMut wraps data as a mutable view over a foreign buffer.
func NewViewMut[T any](data []T, base any) *ArbArray[T] {
	return &ArbArray[T]{data: data, shape: []int{len(data)}, variant: ViewMut, base: base}
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Variant reports the current ownership mode.
func (a *ArbArray[T]) Variant() Variant { return a.variant }

// Len returns the total element count (product of Shape()).
func (a *ArbArray[T]) Len() int { return len(a.data) }

// Ndim returns the number of dimensions.
func (a *ArbArray[T]) Ndim() int { return len(a.shape) }

// Shape returns the array's shape. The returned slice must not be
// mutated by callers.
func (a *ArbArray[T]) Shape() []int { return a.shape }

// LenOf returns the extent along one axis.
func (a *ArbArray[T]) LenOf(axis int) int { return a.shape[axis] }

// Slice exposes the backing data directly. Callers must not retain or
// mutate the result if the array is a View (not ViewMut or Owned).
func (a *ArbArray[T]) Slice() []T { return a.data }

// Base returns the view-on-base holder, or nil for an Owned array.
func (a *ArbArray[T]) Base() any { return a.base }

// View returns a View over the same backing storage (the "deref"
// operation of spec §3.3: normalize ViewMut/Owned to a View without
// copying).
func (a *ArbArray[T]) View() *ArbArray[T] {
	base := a.base
	if a.variant == Owned {
		base = a
	}
	return &ArbArray[T]{data: a.data, shape: a.shape, variant: View, base: base}
}

// IntoOwned materializes an exclusively-owned copy, without aliasing
// the source (spec §3.3 into_owned). Owned→Owned still copies, since
// into_owned's contract is "materialize without aliasing", not "no-op
// if already owned".
func (a *ArbArray[T]) IntoOwned() *ArbArray[T] {
	owned := make([]T, len(a.data))
	copy(owned, a.data)
	return NewOwnedShape(owned, a.shape)
}

// ToOwned converts View→Owned by copy, or ViewMut→Owned by moving the
// storage (spec §3.2 invariant). It consumes a, which must not be used
// afterward.
func (a *ArbArray[T]) ToOwned() *ArbArray[T] {
	switch a.variant {
	case Owned:
		return a
	case ViewMut:
		return &ArbArray[T]{data: a.data, shape: a.shape, variant: Owned}
	default: // View
		return a.IntoOwned()
	}
}

// Clone returns an independent ArbArray sharing the same backing slice
// and base holder as a — used by Expr's "context-clone" (spec §4.3.3)
// to duplicate the structural shell of a nested base without copying
// array data.
func (a *ArbArray[T]) Clone() *ArbArray[T] {
	clone := *a
	return &clone
}

// Sub1D returns a View over the half-open row range [lo, hi) of a 1-D
// array, used by the rolling-by-start-index driver (spec §4.2) to slice
// x[start_i..=i] without allocating.
func (a *ArbArray[T]) Sub1D(lo, hi int) *ArbArray[T] {
	base := a.base
	if a.variant == Owned {
		base = a
	}
	return &ArbArray[T]{data: a.data[lo:hi], shape: []int{hi - lo}, variant: View, base: base}
}
