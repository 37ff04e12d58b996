package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/taigrr/wireview/pkg/math3d"
)

// Text shape format: entries are separated by ';' or newlines and the
// numbers inside an entry by ','. Vertices are "x,y,z" and edges "from,to",
// for example "0,0,0; 1,0,0" and "0,1".

func splitEntries(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
}

func splitFields(entry string) []string {
	parts := strings.Split(entry, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// ParseVertices parses "x,y,z" entries. Entries that do not hold exactly
// three finite numbers are skipped.
func ParseVertices(text string) []math3d.Vec3 {
	var out []math3d.Vec3
	for _, entry := range splitEntries(text) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		fields := splitFields(entry)
		if len(fields) != 3 {
			continue
		}
		var xyz [3]float64
		ok := true
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
			xyz[i] = v
		}
		if ok {
			out = append(out, math3d.V3(xyz[0], xyz[1], xyz[2]))
		}
	}
	return out
}

// ParseEdges parses "from,to" entries. Entries that do not hold exactly two
// non-negative integers are skipped. Indices are not checked against any
// vertex count.
func ParseEdges(text string) []Edge {
	var out []Edge
	for _, entry := range splitEntries(text) {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		fields := splitFields(entry)
		if len(fields) != 2 {
			continue
		}
		from, err1 := strconv.Atoi(fields[0])
		to, err2 := strconv.Atoi(fields[1])
		if err1 != nil || err2 != nil || from < 0 || to < 0 {
			continue
		}
		out = append(out, E(from, to))
	}
	return out
}

// ParseBody builds a body from vertex and edge text.
func ParseBody(verticesText, edgesText string) *Body {
	return NewBody(ParseVertices(verticesText), ParseEdges(edgesText))
}
