package main

// node is a witch as seen by one search: the learned field records which
// learn option (by index) was taken at the root, -1 if none.
type node struct {
	witch   Witch
	learned int
}

// stateKey is the packed identity of a node: 4 bits per inventory tier and
// the learned option in header, one castable bit per cast in flags.
type stateKey struct {
	header uint32
	flags  uint64
}

func (n node) key() stateKey {
	var k stateKey
	for t, v := range n.witch.Inventory {
		k.header |= uint32(v&0xF) << (4 * t)
	}
	k.header |= uint32(n.learned+1) << 16
	for i, c := range n.witch.Casts {
		if c.Castable {
			k.flags |= 1 << i
		}
	}
	return k
}

// expand emits every successor of n: learns (root only), casts with their
// multicast chains, then rest.
func expand(n node, atRoot bool, learns []Learn, emit func(node, Action)) {
	w := n.witch
	if atRoot {
		for li, l := range learns {
			if w.CanLearn(l) {
				emit(node{witch: w.ApplyLearn(l), learned: li}, LearnAction(l.ID))
			}
		}
	}

	for i, c := range w.Casts {
		if !w.CanCast(i) {
			continue
		}
		next := w.ApplyCast(i)
		emit(node{witch: next, learned: n.learned}, CastAction(c.ID, 1))
		if !c.Repeatable || c.Delta == (Ingredients{}) {
			continue
		}
		// chained results share the spent cast pool; nothing mutates it
		for times := 2; ; times++ {
			inv := next.Inventory.Add(c.Delta)
			if !fits(inv) {
				break
			}
			next = Witch{Inventory: inv, Casts: next.Casts}
			emit(node{witch: next, learned: n.learned}, CastAction(c.ID, times))
		}
	}

	emit(node{witch: w.ApplyRest(), learned: n.learned}, RestAction())
}
