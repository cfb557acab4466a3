package fixgl

// Trail remembers the last N screen positions in a ring.
type Trail struct {
	x, y   []int
	cursor int
}

func NewTrail(n int) *Trail {
	if n < 1 {
		n = 1
	}
	return &Trail{x: make([]int, n), y: make([]int, n)}
}

func (t *Trail) Len() int { return len(t.x) }

// Push records a position, overwriting the oldest one.
func (t *Trail) Push(x, y int) {
	t.x[t.cursor] = x
	t.y[t.cursor] = y
	t.cursor = (t.cursor + 1) % len(t.x)
}

// Each visits every slot from oldest (age 0) to newest (age Len-1).
func (t *Trail) Each(fn func(age, x, y int)) {
	n := len(t.x)
	for k := 0; k < n; k++ {
		i := (t.cursor + k) % n
		fn(k, t.x[i], t.y[i])
	}
}
