package document

// Merge overlays src onto dst, mutating dst. The overlay is a recursive map
// merge: where both sides hold a map node the merge descends, otherwise the
// right-hand side replaces the left wholesale. Leaf values, including lists
// and object-constructor expressions, are never concatenated, matching
// override semantics where a group's feature list fully supersedes the
// default.
func Merge(dst, src *Node) {
	if !dst.IsMap() || !src.IsMap() {
		panic("document: Merge requires two map nodes")
	}
	for _, name := range src.Keys() {
		srcChild, _ := src.Child(name)
		dstChild, ok := dst.Child(name)
		if ok && dstChild.IsMap() && srcChild.IsMap() {
			Merge(dstChild, srcChild)
			continue
		}
		dst.SetChild(name, srcChild.Clone())
	}
}
