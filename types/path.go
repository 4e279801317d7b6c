package types

import (
	"strconv"
	"strings"

	"github.com/mycel-lang/mon/immutable"
)

// pathSeg is one step of a resolve.ValidationSite.Path ("$.a.port",
// "$.admin[2]"): either a map key or a slice index.
type pathSeg struct {
	key     string
	index   int
	isIndex bool
}

// parsePath splits a JSONPath-like site path into the segments below its
// leading "$". An empty result means the site annotated the root value
// itself.
func parsePath(path string) []pathSeg {
	body := strings.TrimPrefix(path, "$")
	var segs []pathSeg
	for len(body) > 0 {
		switch body[0] {
		case '.':
			body = body[1:]
			end := strings.IndexAny(body, ".[")
			if end == -1 {
				end = len(body)
			}
			segs = append(segs, pathSeg{key: body[:end]})
			body = body[end:]
		case '[':
			end := strings.IndexByte(body, ']')
			if end == -1 {
				return segs
			}
			n, err := strconv.Atoi(body[1:end])
			if err != nil {
				return segs
			}
			segs = append(segs, pathSeg{index: n, isIndex: true})
			body = body[end+1:]
		default:
			return segs
		}
	}
	return segs
}

// getAtPath navigates root to the value named by path.
func getAtPath(root immutable.Value, path string) (immutable.Value, bool) {
	cur := root
	for _, seg := range parsePath(path) {
		if seg.isIndex {
			s, ok := cur.Slice()
			if !ok {
				return immutable.Value{}, false
			}
			cur, ok = s.GetOK(seg.index)
			if !ok {
				return immutable.Value{}, false
			}
			continue
		}
		m, ok := cur.Map()
		if !ok {
			return immutable.Value{}, false
		}
		cur, ok = m.Get(seg.key)
		if !ok {
			return immutable.Value{}, false
		}
	}
	return cur, true
}

// setAtPath returns a copy of root with the value at path replaced by
// newVal. Each container on the way down to path is rebuilt from a deep
// copy ([immutable.Map.Clone], [immutable.Slice.Clone]); root itself is
// left unchanged.
func setAtPath(root immutable.Value, path string, newVal immutable.Value) immutable.Value {
	segs := parsePath(path)
	if len(segs) == 0 {
		return newVal
	}
	return setAtSegs(root, segs, newVal)
}

func setAtSegs(cur immutable.Value, segs []pathSeg, newVal immutable.Value) immutable.Value {
	seg := segs[0]
	rest := segs[1:]

	if seg.isIndex {
		s, ok := cur.Slice()
		if !ok {
			return cur
		}
		child, ok := s.GetOK(seg.index)
		if !ok {
			return cur
		}
		updated := newVal
		if len(rest) > 0 {
			updated = setAtSegs(child, rest, newVal)
		}
		arr := s.Clone()
		arr[seg.index] = updated.Unwrap()
		return immutable.Wrap(immutable.WrapSlice(arr))
	}

	m, ok := cur.Map()
	if !ok {
		return cur
	}
	child, ok := m.Get(seg.key)
	if !ok {
		return cur
	}
	updated := newVal
	if len(rest) > 0 {
		updated = setAtSegs(child, rest, newVal)
	}
	om := m.Clone()
	om.Set(seg.key, updated.Unwrap())
	return immutable.Wrap(immutable.WrapOrderedMap(om))
}

// pathDepth returns how many segments deep path is, used to order
// validation sites deepest-first so a parent site's read of its own subtree
// already reflects any child site's injected defaults.
func pathDepth(path string) int {
	return len(parsePath(path))
}
