package component

// ObjectKind is what a scene object depicts.
type ObjectKind uint8

const (
	KindFloor ObjectKind = iota
	KindWall
	KindButton
	KindAvatar
)

func (k ObjectKind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindButton:
		return "button"
	case KindAvatar:
		return "avatar"
	}
	return "unknown"
}

type Appearance struct {
	Kind  ObjectKind
	Alpha float64
	// Lit swaps a button to its activated look.
	Lit bool
}

var AppearanceComponent = NewComponent[Appearance]()
