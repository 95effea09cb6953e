package types

import "fmt"

/*
Index handles used throughout the mesh and basis enumerations. Each kind of index is its own
type so that an element number can't be handed to something expecting a side number, etc.
All of them are zero based.
*/

// MeshCoord is a single integer mesh coordinate component, e.g. a column, row or stack.
type MeshCoord int

// Dim is an axis number in [0, space dimension).
type Dim int

// FENum is a flat finite element (interior) number.
type FENum int

// NBSideNum is a flat non-boundary side number.
type NBSideNum int

// OShape identifies an oriented element shape.
type OShape int

// BasisElNum is a global basis element number.
type BasisElNum int

// FaceMonNum is an index into the local monomial sequence of an interior or side.
type FaceMonNum int

/*
SideFace is one of the 2*d side slots of an element. Side face 2a is the side of lesser
coordinate value along axis a, side face 2a+1 the side of greater coordinate value.
*/
type SideFace int

// PerpAxis returns the axis perpendicular to the side face.
func (sf SideFace) PerpAxis() Dim {
	return Dim(sf / 2)
}

// IsLesser is true when the side face has the lesser coordinate value on its perpendicular axis.
func (sf SideFace) IsLesser() bool {
	return sf%2 == 0
}

func (sf SideFace) String() string {
	if sf.IsLesser() {
		return fmt.Sprintf("SideFace(%d:lesser,axis=%d)", int(sf), sf.PerpAxis())
	}
	return fmt.Sprintf("SideFace(%d:greater,axis=%d)", int(sf), sf.PerpAxis())
}

// LesserSideFacePerpToAxis returns the side face of lesser coordinate value along axis a.
func LesserSideFacePerpToAxis(a Dim) SideFace {
	return SideFace(2 * a)
}

// GreaterSideFacePerpToAxis returns the side face of greater coordinate value along axis a.
func GreaterSideFacePerpToAxis(a Dim) SideFace {
	return SideFace(2*a + 1)
}

// Face selects either the interior of an element or one of its side faces.
type Face struct {
	side   SideFace
	isSide bool
}

// Interior is the face selector for an element's interior.
func Interior() Face {
	return Face{}
}

// Side is the face selector for the side face sf.
func Side(sf SideFace) Face {
	return Face{side: sf, isSide: true}
}

func (f Face) IsInterior() bool { return !f.isSide }

// SideFace returns the side face, panics for the interior face.
func (f Face) SideFace() SideFace {
	if !f.isSide {
		panic(fmt.Errorf("interior face has no side face"))
	}
	return f.side
}

func (f Face) String() string {
	if f.isSide {
		return f.side.String()
	}
	return "Interior"
}
