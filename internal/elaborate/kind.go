package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// kind elaborates a surface ast.Kind into a types.Kind, defaulting a
// missing annotation to Star (spec.md §4.4.4).
func kind(k ast.Kind) types.Kind {
	if k == nil {
		return types.Star
	}
	switch n := k.(type) {
	case ast.KindStar:
		return types.Star
	case ast.KindArrow:
		return types.KArrow{Left: kind(n.Left), Right: kind(n.Right)}
	default:
		return types.Star
	}
}
