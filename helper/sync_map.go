package helper

import "sync"

// SyncMap is a typed sync.Map. The zero value is empty and ready to use.
type SyncMap[Key comparable, Value any] struct {
	inner sync.Map
}

func (m *SyncMap[Key, Value]) Get(key Key) (value Value, exists bool) {
	rawValue, exists := m.inner.Load(key)
	if !exists {
		return value, exists
	}
	return rawValue.(Value), exists
}

// GetOrCompute returns the value of key, computing and storing it when absent.
// Concurrent callers may compute the value more than once, but all of them
// get the value that was stored first.
func (m *SyncMap[Key, Value]) GetOrCompute(key Key, compute func(key Key) Value) Value {
	if value, exists := m.Get(key); exists {
		return value
	}
	actual, _ := m.inner.LoadOrStore(key, compute(key))
	return actual.(Value)
}

// Len counts the entries. It is linear in the size of the map.
func (m *SyncMap[Key, Value]) Len() int {
	count := 0
	m.inner.Range(func(any, any) bool {
		count++
		return true
	})
	return count
}

func (m *SyncMap[Key, Value]) Clear() {
	m.inner.Clear()
}
