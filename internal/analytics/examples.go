package analytics

import "sort"

// Position orders examples by where they appeared in the input record list.
type Position struct {
	Record int
	Answer int
}

func (p Position) less(o Position) bool {
	if p.Record != o.Record {
		return p.Record < o.Record
	}
	return p.Answer < o.Answer
}

type example struct {
	pos  Position
	text string
}

// exampleSet keeps the first `limit` distinct texts by position. Adding in
// any order, or merging partial sets, yields the same contents as a single
// in-order pass.
type exampleSet struct {
	limit int
	items []example
}

func newExampleSet(limit int) exampleSet {
	return exampleSet{limit: limit}
}

func (s *exampleSet) add(pos Position, text string) {
	for i := range s.items {
		if s.items[i].text == text {
			if pos.less(s.items[i].pos) {
				s.items[i].pos = pos
				s.sort()
			}
			return
		}
	}
	if len(s.items) < s.limit {
		s.items = append(s.items, example{pos: pos, text: text})
		s.sort()
		return
	}
	if last := len(s.items) - 1; last >= 0 && pos.less(s.items[last].pos) {
		s.items[last] = example{pos: pos, text: text}
		s.sort()
	}
}

func (s *exampleSet) merge(o exampleSet) {
	for _, e := range o.items {
		s.add(e.pos, e.text)
	}
}

func (s *exampleSet) sort() {
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].pos.less(s.items[j].pos) })
}

func (s exampleSet) texts() []string {
	out := make([]string, len(s.items))
	for i, e := range s.items {
		out[i] = e.text
	}
	return out
}
