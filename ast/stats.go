package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Statistics summarizes the shape of a tree.
type Statistics struct {
	Nodes int
	Depth int
	Kinds map[NodeType]int
}

// Stats counts the nodes of a tree by kind and measures its depth.
func Stats(n Node) Statistics {
	s := Statistics{Kinds: map[NodeType]int{}}
	stats(n, 1, &s)
	return s
}

func stats(n Node, depth int, s *Statistics) {
	if isNil(n) {
		return
	}
	s.Nodes++
	s.Kinds[n.Type()]++
	if depth > s.Depth {
		s.Depth = depth
	}
	for _, c := range Children(n) {
		stats(c, depth+1, s)
	}
}

func (s Statistics) String() string {
	kinds := make([]string, 0, len(s.Kinds))
	for k, v := range s.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", k, v))
	}
	sort.Strings(kinds)

	return fmt.Sprintf("nodes=%d depth=%d %s", s.Nodes, s.Depth, strings.Join(kinds, " "))
}
