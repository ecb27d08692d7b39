package component

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component store in a world.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32
	componentNames  sync.Map // ComponentID -> string
)

// ComponentKind is the typed key for components of type T.
type ComponentKind[T any] struct {
	id ComponentID
}

// NewComponentKind registers a fresh kind for T. Registering the same T
// twice yields two independent stores.
func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	componentNames.Store(id, fmt.Sprintf("%T", *new(T)))
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }
func (k ComponentKind[T]) String() string  { return k.id.String() }

func (id ComponentID) String() string {
	if name, ok := componentNames.Load(id); ok {
		return name.(string)
	}
	return fmt.Sprintf("component(%d)", uint32(id))
}

// ComponentHandle is the package-level declaration for a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] { return h.kind }
func (h ComponentHandle[T]) ID() ComponentID        { return h.kind.id }
