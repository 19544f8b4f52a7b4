// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package collide dispatches pairwise overlap checks between shapes.
// Every pair of shape types is implemented once, in one argument order,
// and registering it makes both orders available. Boundary contact counts
// as a collision for every built-in pair.
package collide

import (
	"fmt"
	"reflect"
	"sync"
)

// Predicate checks whether a and b collide and returns information about
// the collision. For most shapes O is a bool.
type Predicate[A, B, O any] func(a A, b B) O

// Swap returns p with its arguments flipped, so that an implementation of
// A against B also serves B against A.
func Swap[A, B, O any](p Predicate[A, B, O]) Predicate[B, A, O] {
	return func(b B, a A) O {
		return p(a, b)
	}
}

type pair struct {
	a, b reflect.Type
}

func (p pair) String() string {
	return fmt.Sprintf("%s/%s", p.a, p.b)
}

// Registry holds collision predicates keyed by the concrete types
// of the two shapes. It is safe for concurrent use.
type Registry[O any] struct {
	mutex sync.RWMutex
	preds map[pair]func(a, b any) O
}

// NewRegistry creates an empty Registry
func NewRegistry[O any]() *Registry[O] {
	return &Registry[O]{
		preds: make(map[pair]func(a, b any) O),
	}
}

// Register installs p for the pair (A, B) and its swapped form for (B, A).
// It panics if either order of the pair was already registered.
func Register[A, B, O any](r *Registry[O], p Predicate[A, B, O]) {
	forward := pair{typeOf[A](), typeOf[B]()}
	backward := pair{forward.b, forward.a}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.preds[forward]; ok {
		panic(fmt.Sprintf("collide: pair %s already registered", forward))
	}
	if _, ok := r.preds[backward]; ok {
		panic(fmt.Sprintf("collide: pair %s already registered as %s", forward, backward))
	}

	r.preds[forward] = func(a, b any) O {
		return p(a.(A), b.(B))
	}
	if forward != backward {
		swapped := Swap(p)
		r.preds[backward] = func(b, a any) O {
			return swapped(b.(B), a.(A))
		}
	}
}

// Check runs the predicate registered for the dynamic types of a and b.
// The second result is false when no such pair is known.
func (r *Registry[O]) Check(a, b any) (O, bool) {
	r.mutex.RLock()
	pred, ok := r.preds[pair{reflect.TypeOf(a), reflect.TypeOf(b)}]
	r.mutex.RUnlock()

	if !ok {
		var zero O
		return zero, false
	}
	return pred(a, b), true
}

// Supports reports whether a predicate exists for the types of a and b
func (r *Registry[O]) Supports(a, b any) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.preds[pair{reflect.TypeOf(a), reflect.TypeOf(b)}]
	return ok
}

// Check is the typed form of Registry.Check
func Check[A, B, O any](r *Registry[O], a A, b B) (O, bool) {
	return r.Check(a, b)
}

// Default holds the built-in shape pairs
var Default = NewRegistry[bool]()

func init() {
	Register(Default, Rect.Overlaps)
	Register(Default, Rect.Contains)
	Register(Default, Circle.Overlaps)
	Register(Default, Circle.Contains)
	Register(Default, Circle.OverlapsRect)
	Register(Default, Triangle.Contains)
}

// Collide reports whether a and b overlap using the built-in pairs.
// Unsupported pairs never collide.
func Collide(a, b any) bool {
	hit, _ := Default.Check(a, b)
	return hit
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
