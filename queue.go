package future

// taskqueue is a growable FIFO ring of tasks.
//
// A task is present at most once; the flag bits on the task itself
// guarantee that, so the queue needs no membership set.
type taskqueue struct {
	buf  []*task
	head int
	n    int
}

func (q *taskqueue) Empty() bool {
	return q.n == 0
}

func (q *taskqueue) Push(t *task) {
	if q.n == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.n)%len(q.buf)] = t
	q.n++
}

func (q *taskqueue) Pop() *task {
	t := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return t
}

func (q *taskqueue) grow() {
	size := len(q.buf) * 2
	if size == 0 {
		size = 8
	}
	buf := make([]*task, size)
	for i := range q.n {
		buf[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = buf
	q.head = 0
}
