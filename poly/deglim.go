package poly

import (
	"fmt"
	"strings"

	"github.com/notargets/wgfem/types"
)

type DegLimKind uint8

const (
	// MaxMonDeg limits the total degree of each monomial
	MaxMonDeg DegLimKind = iota
	// MaxMonFactorDeg limits the exponent of each monomial factor
	MaxMonFactorDeg
)

var DegLimNameMap = map[string]DegLimKind{
	"maxmondeg":       MaxMonDeg,
	"total":           MaxMonDeg,
	"maxmonfactordeg": MaxMonFactorDeg,
	"factor":          MaxMonFactorDeg,
}

func (k DegLimKind) String() string {
	switch k {
	case MaxMonDeg:
		return "MaxMonDeg"
	case MaxMonFactorDeg:
		return "MaxMonFactorDeg"
	default:
		return fmt.Sprintf("DegLimKind(%d)", uint8(k))
	}
}

// DegLim caps monomial degrees, either the total degree or the degree of each factor.
type DegLim struct {
	Kind DegLimKind
	K    Deg
}

func NewMaxMonDeg(k Deg) DegLim       { return DegLim{Kind: MaxMonDeg, K: k} }
func NewMaxMonFactorDeg(k Deg) DegLim { return DegLim{Kind: MaxMonFactorDeg, K: k} }

// ParseDegLim builds a degree limit from a kind name as found in input files.
func ParseDegLim(kind string, k int) (lim DegLim, err error) {
	var (
		ok bool
	)
	if lim.Kind, ok = DegLimNameMap[strings.ToLower(strings.TrimSpace(kind))]; !ok {
		err = types.InvalidConfigf("unknown degree limit type %q", kind)
		return
	}
	if k < 0 {
		err = types.InvalidConfigf("negative degree limit %d", k)
		return
	}
	lim.K = Deg(k)
	return
}

func (l DegLim) String() string {
	return fmt.Sprintf("%s(%d)", l.Kind, l.K)
}

// Admits is true when the monomial satisfies the limit.
func (l DegLim) Admits(m Monomial) bool {
	if l.Kind == MaxMonDeg {
		return m.TotalDeg() <= l.K
	}
	for r := 0; r < m.DomainDim(); r++ {
		if m.Exp(types.Dim(r)) > l.K {
			return false
		}
	}
	return true
}
