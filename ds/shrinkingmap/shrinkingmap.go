package shrinkingmap

// the default options applied to the ShrinkingMap.
var defaultOptions = []Option{
	WithShrinkingThresholdRatio(10.0),
	WithShrinkingThresholdCount(100),
}

// Options define options for a ShrinkingMap.
type Options struct {
	// The ratio between the amount of deleted keys and
	// the current map's size before shrinking is triggered.
	shrinkingThresholdRatio float32
	// The count of deletions that triggers shrinking of the map.
	shrinkingThresholdCount int
	// The size hint used when the underlying map is allocated.
	initialCapacity int
}

// applies the given Option.
func (so *Options) apply(opts ...Option) {
	for _, opt := range opts {
		opt(so)
	}
}

// WithShrinkingThresholdRatio defines the ratio between the amount
// of deleted keys and the current map's size before shrinking is triggered.
func WithShrinkingThresholdRatio(ratio float32) Option {
	return func(opts *Options) {
		opts.shrinkingThresholdRatio = ratio
	}
}

// WithShrinkingThresholdCount defines the count of
// deletions that triggers shrinking of the map.
func WithShrinkingThresholdCount(count int) Option {
	return func(opts *Options) {
		opts.shrinkingThresholdCount = count
	}
}

// WithInitialCapacity defines the size hint of the map when it is created or cleared.
func WithInitialCapacity(capacity int) Option {
	return func(opts *Options) {
		opts.initialCapacity = capacity
	}
}

// Option is a function setting an Options option.
type Option func(opts *Options)

// ShrinkingMap provides a non concurrent-safe map
// that shrinks if certain conditions are met (AND condition).
// Default values are:
// - ShrinkingThresholdRatio: 10.0	(set to 0.0 to disable)
// - ShrinkingThresholdCount: 100	(set to 0 to disable).
type ShrinkingMap[K comparable, V any] struct {
	m           map[K]V
	deletedKeys int

	// holds the map options.
	opts *Options
}

// New returns a new ShrinkingMap.
func New[K comparable, V any](opts ...Option) *ShrinkingMap[K, V] {
	mapOpts := &Options{}
	mapOpts.apply(defaultOptions...)
	mapOpts.apply(opts...)

	return &ShrinkingMap[K, V]{
		m:    makeMap[K, V](mapOpts.initialCapacity),
		opts: mapOpts,
	}
}

// Set adds a key-value pair to the map. It returns the previous value if the key already existed.
func (s *ShrinkingMap[K, V]) Set(key K, value V) (previousValue V, previousValueExisted bool) {
	previousValue, previousValueExisted = s.m[key]
	s.m[key] = value

	return previousValue, previousValueExisted
}

// Get returns the value mapped to the given key, and the boolean flag that indicated if the key exists.
func (s *ShrinkingMap[K, V]) Get(key K) (value V, exists bool) {
	value, exists = s.m[key]

	return
}

// Has returns if an entry with the given key exists.
func (s *ShrinkingMap[K, V]) Has(key K) (has bool) {
	_, has = s.m[key]

	return
}

// ForEach iterates through the map and calls the consumer for every element.
// Returning false from this function indicates to abort the iteration.
func (s *ShrinkingMap[K, V]) ForEach(callback func(K, V) bool) bool {
	if s == nil {
		return true
	}

	for k, v := range s.m {
		if !callback(k, v) {
			return false
		}
	}

	return true
}

// Keys returns the keys of the map in no particular order.
func (s *ShrinkingMap[K, V]) Keys() []K {
	keys := make([]K, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}

	return keys
}

// Values returns the values of the map in no particular order.
func (s *ShrinkingMap[K, V]) Values() []V {
	values := make([]V, 0, len(s.m))
	for _, v := range s.m {
		values = append(values, v)
	}

	return values
}

// Size returns the number of entries in the map.
func (s *ShrinkingMap[K, V]) Size() (size int) {
	if s == nil {
		return 0
	}

	return len(s.m)
}

// IsEmpty returns if the map is empty.
func (s *ShrinkingMap[K, V]) IsEmpty() (empty bool) {
	return s.Size() == 0
}

// Delete removes the entry with the given key, and possibly
// shrinks the map if the shrinking conditions have been reached.
func (s *ShrinkingMap[K, V]) Delete(key K) (deletedValue V, deleted bool) {
	if deletedValue, deleted = s.m[key]; !deleted {
		return deletedValue, false
	}

	s.deletedKeys++
	delete(s.m, key)

	if s.shouldShrink() {
		s.Shrink()
	}

	return deletedValue, true
}

// Clear removes all entries and releases the memory held by the underlying map.
func (s *ShrinkingMap[K, V]) Clear() {
	s.m = makeMap[K, V](s.opts.initialCapacity)
	s.deletedKeys = 0
}

// AsMap returns the shrinking map as a regular map.
func (s *ShrinkingMap[K, V]) AsMap() (asMap map[K]V) {
	asMap = make(map[K]V, len(s.m))
	for k, v := range s.m {
		asMap[k] = v
	}

	return asMap
}

// Clone returns a copy of the map that uses the same options.
func (s *ShrinkingMap[K, V]) Clone() *ShrinkingMap[K, V] {
	clonedOpts := *s.opts

	return &ShrinkingMap[K, V]{
		m:    s.AsMap(),
		opts: &clonedOpts,
	}
}

// shouldShrink checks if the conditions to shrink the map are met.
func (s *ShrinkingMap[K, V]) shouldShrink() bool {
	size := len(s.m)

	// check if one of the conditions was defined, otherwise never shrink
	if !(s.opts.shrinkingThresholdRatio != 0.0 || s.opts.shrinkingThresholdCount != 0) {
		return false
	}

	if s.opts.shrinkingThresholdRatio != 0.0 {
		// ratio was defined

		// check for division by zero
		if size == 0 {
			return false
		}

		if float32(s.deletedKeys)/float32(size) < s.opts.shrinkingThresholdRatio {
			// condition not reached
			return false
		}
	}

	if s.opts.shrinkingThresholdCount != 0 {
		// count was defined

		if s.deletedKeys < s.opts.shrinkingThresholdCount {
			// condition not reached
			return false
		}
	}

	return true
}

// Shrink re-allocates the underlying map with the current amount of entries.
func (s *ShrinkingMap[K, V]) Shrink() {
	s.m = s.AsMap()
	s.deletedKeys = 0
}

func makeMap[K comparable, V any](capacity int) map[K]V {
	if capacity > 0 {
		return make(map[K]V, capacity)
	}

	return make(map[K]V)
}
