package expr

// Context is an immutable, cheaply-cloned map from column name to the
// Expr currently bound to it, threaded through evaluation to resolve
// Data::Context leaves (spec §3.5). Cheap cloning is implemented the
// same copy-on-write way DataDict's name map is: a clone shares the
// underlying map until the clone itself is mutated.
type Context struct {
	cols map[string]*Expr
}

// NewContext builds a Context from a name→Expr map; the caller's map
// is taken by reference (not copied) and must not be mutated after.
func NewContext(cols map[string]*Expr) *Context {
	if cols == nil {
		cols = map[string]*Expr{}
	}
	return &Context{cols: cols}
}

// Lookup resolves name to its bound Expr, if any.
func (c *Context) Lookup(name string) (*Expr, bool) {
	if c == nil {
		return nil, false
	}
	e, ok := c.cols[name]
	return e, ok
}

// Clone returns a Context sharing the same underlying map (spec §3.5:
// "contexts are cloned cheaply, reference-counted"); callers that need
// to add/replace a binding must use With, which copies on write.
func (c *Context) Clone() *Context {
	if c == nil {
		return nil
	}
	return &Context{cols: c.cols}
}

// With returns a new Context with name bound to e, copying the
// underlying map so the receiver is left untouched (copy-on-write,
// matching DataDict's SharedMap discipline for its own name index).
func (c *Context) With(name string, e *Expr) *Context {
	base := map[string]*Expr{}
	if c != nil {
		for k, v := range c.cols {
			base[k] = v
		}
	}
	base[name] = e
	return &Context{cols: base}
}
