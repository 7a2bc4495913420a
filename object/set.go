package object

// hashSet backs Set and FrozenSet. Members iterate in insertion order,
// although the host makes no ordering promise.
type hashSet struct {
	members []Object
	index   map[string]int
}

func (s *hashSet) add(o Object) error {
	h, err := hashKey(o)
	if err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[h]; ok {
		return nil
	}
	s.index[h] = len(s.members)
	s.members = append(s.members, o)
	return nil
}

func (s *hashSet) contains(o Object) bool {
	h, err := hashKey(o)
	if err != nil {
		return false
	}
	_, ok := s.index[h]
	return ok
}

// Set is a mutable unordered collection of hashable objects.
type Set struct {
	hashSet
}

func NewSet(items ...Object) (*Set, error) {
	s := &Set{}
	for _, o := range items {
		if err := s.add(o); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (*Set) TypeName() string { return "set" }

func (s *Set) Add(o Object) error { return s.add(o) }

func (s *Set) Contains(o Object) bool { return s.contains(o) }

func (s *Set) Len() (int, error) { return len(s.members), nil }

func (s *Set) Iter() (Iterator, error) {
	return &setIterator{sliceIterator{items: append([]Object(nil), s.members...)}}, nil
}

// FrozenSet is an immutable, hashable set.
type FrozenSet struct {
	hashSet
}

func NewFrozenSet(items ...Object) (*FrozenSet, error) {
	s := &FrozenSet{}
	for _, o := range items {
		if err := s.add(o); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (*FrozenSet) TypeName() string { return "frozenset" }

func (s *FrozenSet) Contains(o Object) bool { return s.contains(o) }

func (s *FrozenSet) Len() (int, error) { return len(s.members), nil }

func (s *FrozenSet) Iter() (Iterator, error) {
	return &setIterator{sliceIterator{items: s.members}}, nil
}

// setIterator is what the host hands out for iter(set); it is itself an
// object whose type is never decodable.
type setIterator struct {
	sliceIterator
}

func (*setIterator) TypeName() string { return "set_iterator" }
