package canopy

// Container is a Node that owns an ordered list of children. Order is paint
// order: index 0 is drawn first.
type Container interface {
	Node

	// AcceptsChild reports whether n may be a child of this container.
	AcceptsChild(n Node) bool
	Add(children ...Node)
	AddAt(child Node, index int)
	Remove(child Node)
	RemoveAll()
	Children() []Node
	NumChildren() int
	ChildAt(index int) Node
	IndexOf(child Node) int
	Iterator() *ChildIterator

	MoveUp(child Node)
	MoveDown(child Node)
	MoveToTop(child Node)
	MoveToBottom(child Node)

	container() *ContainerBase
}

// ContainerBase implements Container. Embedders call initContainer with
// their accepted-child predicate.
type ContainerBase struct {
	NodeBase
	cself    Container
	children []Node
	accepts  func(Node) bool
}

func (c *ContainerBase) initContainer(self Container, typ NodeType, attrs *Attributes, accepts func(Node) bool) {
	c.initNode(self, typ, attrs)
	c.cself = self
	c.accepts = accepts
}

func (c *ContainerBase) container() *ContainerBase { return c }

// AcceptsChild reports whether n is a valid child type for this container.
func (c *ContainerBase) AcceptsChild(n Node) bool {
	if n == nil {
		return false
	}
	if c.accepts == nil {
		return true
	}
	return c.accepts(n)
}

// checkChild panics for nil, disallowed or cycle-forming children.
func (c *ContainerBase) checkChild(child Node) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if !c.AcceptsChild(child) {
		panic("canopy: " + child.TypeName() + " is not a valid child of " + c.TypeName())
	}
	if isAncestor(child, c.cself) {
		panic("canopy: adding child would create a cycle")
	}
}

// Add appends children in order. A child that already has a parent is
// removed from it first.
// Panics if a child is nil, not accepted by this container, or an ancestor
// of this container.
func (c *ContainerBase) Add(children ...Node) {
	for _, child := range children {
		c.checkChild(child)
		detach(child)
		child.base().parent = c.cself
		c.children = append(c.children, child)
		c.debugCheck(child)
	}
}

// AddAt inserts child before the child currently at index, after detaching
// it from any prior parent. An index of NumChildren appends. Same
// reparenting and validity checks as Add; the tree is unchanged on panic.
func (c *ContainerBase) AddAt(child Node, index int) {
	c.checkChild(child)
	if index < 0 || index > len(c.children) {
		panic("canopy: child index out of range")
	}
	if child.Parent() == c.cself {
		if i := c.IndexOf(child); i >= 0 && i < index {
			index--
		}
	}
	detach(child)
	child.base().parent = c.cself
	c.children = append(c.children, nil)
	copy(c.children[index+1:], c.children[index:])
	c.children[index] = child
	c.debugCheck(child)
}

// Remove detaches child from this container.
// Panics if child's parent is not this container.
func (c *ContainerBase) Remove(child Node) {
	if child == nil || child.Parent() != c.cself {
		panic("canopy: child's parent is not this container")
	}
	c.removeAt(c.IndexOf(child))
	child.base().parent = nil
}

// RemoveAll detaches every child.
func (c *ContainerBase) RemoveAll() {
	for i, child := range c.children {
		child.base().parent = nil
		c.children[i] = nil
	}
	c.children = c.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (c *ContainerBase) Children() []Node {
	return c.children
}

// NumChildren returns the number of children.
func (c *ContainerBase) NumChildren() int {
	return len(c.children)
}

// ChildAt returns the child at the given index.
func (c *ContainerBase) ChildAt(index int) Node {
	return c.children[index]
}

// IndexOf returns child's position, or -1.
func (c *ContainerBase) IndexOf(child Node) int {
	for i, n := range c.children {
		if n == child {
			return i
		}
	}
	return -1
}

// MoveUp swaps child with the sibling painted after it.
func (c *ContainerBase) MoveUp(child Node) {
	i := c.mustIndex(child)
	if i < len(c.children)-1 {
		c.children[i], c.children[i+1] = c.children[i+1], c.children[i]
	}
}

// MoveDown swaps child with the sibling painted before it.
func (c *ContainerBase) MoveDown(child Node) {
	i := c.mustIndex(child)
	if i > 0 {
		c.children[i], c.children[i-1] = c.children[i-1], c.children[i]
	}
}

// MoveToTop moves child to the end of the paint order.
func (c *ContainerBase) MoveToTop(child Node) {
	c.setChildIndex(child, len(c.children)-1)
}

// MoveToBottom moves child to the start of the paint order.
func (c *ContainerBase) MoveToBottom(child Node) {
	c.setChildIndex(child, 0)
}

func (c *ContainerBase) mustIndex(child Node) int {
	i := c.IndexOf(child)
	if i < 0 {
		panic("canopy: child's parent is not this container")
	}
	return i
}

func (c *ContainerBase) setChildIndex(child Node, index int) {
	old := c.mustIndex(child)
	if old == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if old < index {
		copy(c.children[old:], c.children[old+1:index+1])
	} else {
		copy(c.children[index+1:], c.children[index:old])
	}
	c.children[index] = child
}

// removeAt removes the child at i without clearing its parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (c *ContainerBase) removeAt(i int) {
	copy(c.children[i:], c.children[i+1:])
	c.children[len(c.children)-1] = nil
	c.children = c.children[:len(c.children)-1]
}

// Draw paints every visible child in order with this container's transform
// and alpha applied.
func (c *ContainerBase) Draw(ctx Context2D, alpha float64) {
	a := c.attrs
	if !a.Visible() {
		return
	}
	alpha *= a.Alpha()
	if alpha <= 0 {
		return
	}
	ctx.Save()
	ctx.Transform(c.cself.CombinedTransform())
	for _, child := range c.children {
		child.Draw(ctx, alpha)
	}
	ctx.Restore()
}

func (c *ContainerBase) debugCheck(child Node) {
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(c)
	}
}

// detach removes n from its current parent, if any.
func detach(n Node) {
	b := n.base()
	if b.parent == nil {
		return
	}
	pc := b.parent.container()
	if i := pc.IndexOf(n); i >= 0 {
		pc.removeAt(i)
	}
	b.parent = nil
}

// Iterator returns a cursor over the children that supports removal.
func (c *ContainerBase) Iterator() *ChildIterator {
	return &ChildIterator{c: c, last: -1}
}

// ChildIterator walks a container's children in paint order. Remove detaches
// the child most recently returned by Next.
type ChildIterator struct {
	c    *ContainerBase
	next int
	last int
}

// HasNext reports whether Next will return another child.
func (it *ChildIterator) HasNext() bool {
	return it.next < len(it.c.children)
}

// Next returns the next child. Panics when the iterator is exhausted.
func (it *ChildIterator) Next() Node {
	if !it.HasNext() {
		panic("canopy: iterator has no more children")
	}
	n := it.c.children[it.next]
	it.last = it.next
	it.next++
	return n
}

// Remove detaches the child returned by the last Next call.
// Panics if Next has not been called, or Remove was already called for it.
func (it *ChildIterator) Remove() {
	if it.last < 0 {
		panic("canopy: Remove called without a preceding Next")
	}
	child := it.c.children[it.last]
	it.c.removeAt(it.last)
	child.base().parent = nil
	it.next = it.last
	it.last = -1
}
