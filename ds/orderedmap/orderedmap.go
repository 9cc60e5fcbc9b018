package orderedmap

// OrderedMap provides a map that remembers the insertion order of its keys.
// It is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	head       *Element[K, V]
	tail       *Element[K, V]
	dictionary map[K]*Element[K, V]
}

// New returns a new *OrderedMap. The optional capacity is used as a size hint for the dictionary.
func New[K comparable, V any](optCapacity ...int) *OrderedMap[K, V] {
	orderedMap := new(OrderedMap[K, V])
	orderedMap.initialize(optCapacity...)

	return orderedMap
}

func (o *OrderedMap[K, V]) initialize(optCapacity ...int) {
	if len(optCapacity) > 0 && optCapacity[0] > 0 {
		o.dictionary = make(map[K]*Element[K, V], optCapacity[0])
		return
	}

	o.dictionary = make(map[K]*Element[K, V])
}

// Has returns if an entry with the given key exists.
func (o *OrderedMap[K, V]) Has(key K) (has bool) {
	_, has = o.dictionary[key]

	return
}

// Get returns the value mapped to the given key if exists.
func (o *OrderedMap[K, V]) Get(key K) (value V, exists bool) {
	element, exists := o.dictionary[key]
	if !exists {
		return value, false
	}

	return element.value, true
}

// Set adds a key-value pair to the map. Overwriting an existing key keeps its position.
func (o *OrderedMap[K, V]) Set(key K, newValue V) (previousValue V, previousValueExisted bool) {
	if existingElement, exists := o.dictionary[key]; exists {
		previousValue = existingElement.value
		existingElement.value = newValue

		return previousValue, true
	}

	newElement := &Element[K, V]{
		key:   key,
		value: newValue,
	}

	if o.head == nil {
		o.head = newElement
	} else {
		o.tail.next = newElement
		newElement.prev = o.tail
	}
	o.tail = newElement

	o.dictionary[key] = newElement

	return previousValue, false
}

// ForEach iterates through the map in insertion order and calls the consumer function for every element.
// The iteration can be aborted by returning false in the consumer.
func (o *OrderedMap[K, V]) ForEach(consumer func(key K, value V) bool) bool {
	if o == nil {
		return true
	}

	for currentEntry := o.head; currentEntry != nil; currentEntry = currentEntry.next {
		if !consumer(currentEntry.key, currentEntry.value) {
			return false
		}
	}

	return true
}

// Keys returns the keys of the map in insertion order.
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.Size())
	o.ForEach(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

// Values returns the values of the map in insertion order.
func (o *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, o.Size())
	o.ForEach(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})

	return values
}

// Clear removes all elements from the OrderedMap.
func (o *OrderedMap[K, V]) Clear() {
	o.head = nil
	o.tail = nil
	o.initialize()
}

// Delete deletes the given key (and related value) from the map.
// It returns the deleted value and false if the key was not found.
func (o *OrderedMap[K, V]) Delete(key K) (deletedValue V, deleted bool) {
	element, exists := o.dictionary[key]
	if !exists {
		return deletedValue, false
	}

	delete(o.dictionary, key)

	if element.prev != nil {
		element.prev.next = element.next
	} else {
		o.head = element.next
	}

	if element.next != nil {
		element.next.prev = element.prev
	} else {
		o.tail = element.prev
	}

	return element.value, true
}

// Size returns the amount of entries in the map.
func (o *OrderedMap[K, V]) Size() int {
	if o == nil {
		return 0
	}

	return len(o.dictionary)
}

// IsEmpty returns a boolean value indicating whether the map is empty.
func (o *OrderedMap[K, V]) IsEmpty() bool {
	return o.Size() == 0
}

// Clone returns a copy of the map that keeps the insertion order.
func (o *OrderedMap[K, V]) Clone() (cloned *OrderedMap[K, V]) {
	cloned = New[K, V](o.Size())
	o.ForEach(func(key K, value V) bool {
		cloned.Set(key, value)

		return true
	})

	return cloned
}
