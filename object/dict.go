package object

// Dict is the host's insertion-ordered hash map.
type Dict struct {
	keys   []Object
	values []Object
	index  map[string]int
}

func NewDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (*Dict) TypeName() string { return "dict" }

func (d *Dict) Len() (int, error) { return len(d.keys), nil }

// SetItem inserts or replaces an entry. Replacing keeps the original
// position and the original key object.
func (d *Dict) SetItem(key, value Object) error {
	h, err := hashKey(key)
	if err != nil {
		return err
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[h]; ok {
		d.values[i] = value
		return nil
	}
	d.index[h] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
	return nil
}

func (d *Dict) GetItem(key Object) (Object, error) {
	h, err := hashKey(key)
	if err != nil {
		return nil, err
	}
	i, ok := d.index[h]
	if !ok {
		return nil, NewKeyError(Repr(key))
	}
	return d.values[i], nil
}

// Get looks up a key, reporting false for missing or unhashable keys.
func (d *Dict) Get(key Object) (Object, bool) {
	v, err := d.GetItem(key)
	return v, err == nil
}

// Keys returns a snapshot of the keys in insertion order.
func (d *Dict) Keys() ([]Object, error) {
	return append([]Object(nil), d.keys...), nil
}

// Values returns a snapshot of the values in insertion order.
func (d *Dict) Values() []Object {
	return append([]Object(nil), d.values...)
}

func (d *Dict) Iter() (Iterator, error) {
	return &sliceIterator{items: d.keys}, nil
}

// sliceIterator walks a snapshot slice.
type sliceIterator struct {
	items []Object
	pos   int
}

func (it *sliceIterator) Next() (Object, bool, error) {
	if it.pos >= len(it.items) {
		return nil, false, nil
	}
	o := it.items[it.pos]
	it.pos++
	return o, true, nil
}

func (l *List) Iter() (Iterator, error)  { return &sliceIterator{items: l.items}, nil }
func (t *Tuple) Iter() (Iterator, error) { return &sliceIterator{items: t.items}, nil }
