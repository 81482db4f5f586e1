package nfa

// sparseSet is a set of state ids over a fixed universe with O(1) insert,
// membership and clear. Membership holds when dense and sparse agree, so
// sparse never needs zeroing between generations.
type sparseSet struct {
	dense  []StateID
	sparse []uint32
}

func newSparseSet(capacity int) sparseSet {
	return sparseSet{
		dense:  make([]StateID, 0, capacity),
		sparse: make([]uint32, capacity),
	}
}

func (s *sparseSet) contains(id StateID) bool {
	i := s.sparse[id]
	return int(i) < len(s.dense) && s.dense[i] == id
}

// insert adds id and reports whether it was absent.
func (s *sparseSet) insert(id StateID) bool {
	if s.contains(id) {
		return false
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
	return true
}

func (s *sparseSet) len() int { return len(s.dense) }

func (s *sparseSet) clear() { s.dense = s.dense[:0] }
