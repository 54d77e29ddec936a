package silo

import "unsafe"

const wordSize = int(unsafe.Sizeof(uint64(0)))

// column holds one component's data for every row of an archetype as a
// contiguous byte buffer. Row i occupies buf[i*size:(i+1)*size].
type column struct {
	size  int
	len   int
	words []uint64 // backing arena, keeps rows 8-byte aligned
	buf   []byte   // view of words, len(buf) == size*len
}

func newColumn(size uintptr, capacity int) *column {
	c := &column{size: int(size)}
	if capacity > 0 && size > 0 {
		c.grow(capacity * c.size)
	}
	return c
}

func (c *column) appendBytes(raw []byte) {
	if len(raw) != c.size {
		panic(ElementSizeError{Want: c.size, Got: len(raw)})
	}
	if c.size == 0 {
		c.len++
		return
	}
	if cap(c.buf)-len(c.buf) < c.size {
		c.grow(len(c.buf) + c.size)
	}
	start := len(c.buf)
	c.buf = c.buf[:start+c.size]
	copy(c.buf[start:], raw)
	c.len++
}

func (c *column) grow(minBytes int) {
	capBytes := max(minBytes, 2*cap(c.buf))
	words := make([]uint64, (capBytes+wordSize-1)/wordSize)
	arena := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), len(words)*wordSize)
	n := copy(arena, c.buf)
	c.words = words
	c.buf = arena[:n]
}

func (c *column) readAt(row int) []byte {
	c.check(row)
	return c.buf[row*c.size : (row+1)*c.size : (row+1)*c.size]
}

func (c *column) writeAt(row int) []byte {
	return c.readAt(row)
}

// removeRow swap-removes row. When another row was moved into the vacated
// slot, its previous index is returned with relocated set.
func (c *column) removeRow(row int) (from int, relocated bool) {
	c.check(row)
	last := c.len - 1
	if row != last {
		copy(c.buf[row*c.size:(row+1)*c.size], c.buf[last*c.size:])
		relocated = true
	}
	c.buf = c.buf[:last*c.size]
	c.len--
	return last, relocated
}

func (c *column) check(row int) {
	if row < 0 || row >= c.len {
		panic(RowIndexError{Row: row, Len: c.len})
	}
}

func (c *column) release() {
	c.words = nil
	c.buf = nil
	c.len = 0
}

func checkElementSize[T any](c *column) {
	var zero T
	if got := int(unsafe.Sizeof(zero)); got != c.size {
		panic(ElementSizeError{Want: c.size, Got: got})
	}
}

// columnAt reinterprets the bytes of row as a T.
func columnAt[T any](c *column, row int) *T {
	checkElementSize[T](c)
	c.check(row)
	if c.size == 0 {
		return new(T)
	}
	return (*T)(unsafe.Pointer(&c.buf[row*c.size]))
}

// columnSlice reinterprets the whole column as a []T without copying.
func columnSlice[T any](c *column) []T {
	checkElementSize[T](c)
	if c.size == 0 {
		return make([]T, c.len)
	}
	if c.len == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(c.buf))), c.len)
}

func bytesOf[T any](value *T) []byte {
	size := int(unsafe.Sizeof(*value))
	if size == 0 {
		return []byte{}
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(value)), size)
}
