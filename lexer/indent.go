package lexer

// indentStack holds the widths of the open indentation levels, strictly
// increasing from the bottom. The bottom entry is always 0.
type indentStack []int

func newIndentStack() indentStack {
	return indentStack{0}
}

func (s indentStack) top() int {
	return s[len(s)-1]
}

func (s *indentStack) push(width int) {
	*s = append(*s, width)
}

func (s *indentStack) pop() int {
	top := s.top()
	if len(*s) > 1 {
		*s = (*s)[:len(*s)-1]
	}
	return top
}

// depth returns the number of open levels above the base.
func (s indentStack) depth() int {
	return len(s) - 1
}

// dedents returns the number of levels to pop to get back to width, and
// false if width doesn't match any open level.
func (s indentStack) dedents(width int) (int, bool) {
	n := 0
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == width {
			return n, true
		}
		if s[i] < width {
			break
		}
		n++
	}
	return n, false
}
