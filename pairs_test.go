package rb2d

import "testing"

func TestPairIDSymmetric(t *testing.T) {
	a, b := int32(3), int32(9)
	if pairID(a, b) != pairID(b, a) {
		t.Errorf("pairID must be order-independent: pairID(%d,%d)=%d pairID(%d,%d)=%d",
			a, b, pairID(a, b), b, a, pairID(b, a))
	}
}

func TestPairIDDistinctForDistinctPairs(t *testing.T) {
	ids := map[uint64]struct{ a, b int32 }{}
	pairs := [][2]int32{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {0, 0}}
	for _, p := range pairs {
		id := pairID(p[0], p[1])
		if prev, ok := ids[id]; ok {
			t.Errorf("pairID collision: (%d,%d) and (%d,%d) both hash to %d", p[0], p[1], prev.a, prev.b, id)
		}
		ids[id] = struct{ a, b int32 }{p[0], p[1]}
	}
}

func TestSelectAlgorithmCanonicalOrder(t *testing.T) {
	cases := []struct {
		a, b ShapeType
		want algorithmTag
	}{
		{ShapeCircle, ShapeCircle, algoCircleCircle},
		{ShapeCircle, ShapePolygon, algoCirclePolygon},
		{ShapePolygon, ShapePolygon, algoPolygonPolygon},
		{ShapePolygon, ShapeEdge, algoEdgePolygon},
		{ShapeCircle, ShapeEdge, algoEdgeCircle},
		{ShapeEdge, ShapeEdge, algoNone},
	}
	for _, c := range cases {
		got := selectAlgorithm(c.a, c.b)
		if got != c.want {
			t.Errorf("selectAlgorithm(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestOverlapPairTableAddGetRemove(t *testing.T) {
	table := newOverlapPairTable()
	p1 := overlapPair{id: 1, leftTree: 0, rightTree: 1}
	p2 := overlapPair{id: 2, leftTree: 2, rightTree: 3}
	p3 := overlapPair{id: 3, leftTree: 4, rightTree: 5}

	table.add(p1)
	table.add(p2)
	table.add(p3)

	if _, ok := table.get(2); !ok {
		t.Fatalf("expected pair 2 to be present")
	}

	slot := table.slots[1]
	table.removeAt(slot)

	if _, ok := table.get(1); ok {
		t.Errorf("expected pair 1 to be gone after removal")
	}
	if _, ok := table.get(2); !ok {
		t.Errorf("expected pair 2 to survive removal of pair 1")
	}
	if _, ok := table.get(3); !ok {
		t.Errorf("expected pair 3 to survive removal of pair 1")
	}
	if len(table.pairs) != 2 {
		t.Errorf("expected 2 pairs remaining, got %d", len(table.pairs))
	}
}
