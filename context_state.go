package raster2d

import "errors"

// ErrNoStatesToRestore is returned by Restore when the save stack is
// empty.
var ErrNoStatesToRestore = errors.New("raster2d: no states to restore")

// ErrNoMatchingCookie is returned by Restore when a cookie is given but
// no saved frame on the stack carries it, or when no cookie is given but
// the top frame was saved with one (a cookie-protected frame can only be
// popped by the matching cookie).
var ErrNoMatchingCookie = errors.New("raster2d: no matching cookie")

// Cookie is an opaque 128-bit token that can be attached to a saved
// state so that only a matching Restore call (or one that cascades
// through it) can pop it, protecting state pushed by a helper from being
// popped by unrelated caller code.
type Cookie [16]byte

// savedState is one frame of the context's save stack: the subset of
// context state save()/restore() round-trips, plus the cookie (if any)
// that protects it.
type savedState struct {
	cookie    *Cookie
	matrix    Matrix
	clipDepth int
	mask      *Mask
	paint     *Paint
}

// Save pushes the current transform, paint, clip depth, and mask onto
// the save stack, returning a Cookie that Restore can later use to pop
// exactly down to (and including) this frame regardless of what else
// has been saved above it in the meantime.
func (c *Context) Save() Cookie {
	var cookie Cookie
	c.saveRandomCookie(&cookie)
	return cookie
}

// Push saves the current state without a protecting cookie. It is the
// cheap, common-case entry point used internally by helpers like
// DrawEllipticalArc; Pop reverses it.
func (c *Context) Push() {
	c.pushState(nil)
}

// Pop restores the most recently saved state. If the top frame is
// cookie-protected, Pop refuses to pop it (matching Restore(nil)'s
// semantics) and is a silent no-op, since Push's callers never expect an
// error return; use Restore explicitly when cookie mismatches must be
// observed.
func (c *Context) Pop() {
	_ = c.Restore(nil)
}

// Restore pops the save stack. With cookie == nil, it pops exactly one
// frame — the top one — and fails with ErrNoMatchingCookie without
// popping anything if that frame was saved with a cookie. With a
// non-nil cookie, it searches the stack from the top for a frame saved
// with *cookie and, if found, cascades the pop through every frame from
// the top down to and including the match; if no frame matches, it
// fails with ErrNoMatchingCookie and pops nothing.
func (c *Context) Restore(cookie *Cookie) error {
	if len(c.stack) == 0 {
		return ErrNoStatesToRestore
	}

	if cookie == nil {
		top := c.stack[len(c.stack)-1]
		if top.cookie != nil {
			return ErrNoMatchingCookie
		}
		c.popState()
		return nil
	}

	matchIdx := -1
	for i := len(c.stack) - 1; i >= 0; i-- {
		if c.stack[i].cookie != nil && *c.stack[i].cookie == *cookie {
			matchIdx = i
			break
		}
	}
	if matchIdx < 0 {
		return ErrNoMatchingCookie
	}
	for len(c.stack) > matchIdx {
		c.popState()
	}
	return nil
}

// saveRandomCookie saves a frame protected by cookie. Callers that
// already hold a specific cookie value (e.g. a Restore(cookie) caller
// replaying a known token) should use pushState(cookie) directly instead
// of generating a new one.
func (c *Context) saveRandomCookie(cookie *Cookie) {
	c.cookieSeq++
	seq := c.cookieSeq
	for i := 0; i < 8; i++ {
		cookie[i] = byte(seq >> (8 * uint(i)))
	}
	for i := 8; i < 16; i++ {
		cookie[i] = byte(uintptr(i) ^ uintptr(seq))
	}
	c.pushState(cookie)
}

// pushState appends one savedState frame capturing the context's
// current transform, clip depth, mask, and paint.
func (c *Context) pushState(cookie *Cookie) {
	depth := 0
	if c.clipStack != nil {
		depth = c.clipStack.Depth()
	}
	var maskCopy *Mask
	if c.mask != nil {
		maskCopy = c.mask.Clone()
	}
	c.stack = append(c.stack, savedState{
		cookie:    cookie,
		matrix:    c.matrix,
		clipDepth: depth,
		mask:      maskCopy,
		paint:     c.paint.Clone(),
	})
}

// popState restores the top savedState frame, which the caller must
// have already verified is non-empty and poppable.
func (c *Context) popState() {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]

	c.matrix = top.matrix
	c.paint = top.paint

	if c.clipStack != nil {
		for c.clipStack.Depth() > top.clipDepth {
			c.clipStack.Pop()
		}
	}
	c.mask = top.mask
}
