package ontology

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Digest hashes the live hierarchy: every entity's kind, childID and names
// in childID order, plus each apprentice edge. Two universes with the same
// structure produce the same digest.
func (u *Universe) Digest() uint64 {
	d := xxhash.New()
	var write func(e Entity, depth int)
	write = func(e Entity, depth int) {
		c := e.core()
		_, _ = d.WriteString(strconv.Itoa(depth))
		_, _ = d.WriteString(c.kind.String())
		_, _ = d.WriteString(strconv.Itoa(c.ChildID()))
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(c.globalName)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(c.localName)
		_, _ = d.WriteString("\x00")
		for _, am := range c.apprentices {
			_, _ = d.WriteString(am.role)
			if m := am.Master(); m != nil {
				_, _ = d.WriteString(m.Kind().String())
				_, _ = d.WriteString(strconv.Itoa(m.ChildID()))
				_, _ = d.WriteString("\x00")
				_, _ = d.WriteString(m.GlobalName())
			}
			_, _ = d.WriteString("\x00")
		}
		for _, pm := range c.parents {
			for _, child := range pm.children.Snapshot() {
				write(child.owner, depth+1)
			}
		}
	}
	write(u, 0)
	return d.Sum64()
}
