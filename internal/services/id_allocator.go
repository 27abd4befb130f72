package services

import "railway/internal/domain"

// IDAllocator hands out strictly increasing booking ids. Retired ids are
// never handed out again.
type IDAllocator struct {
	next domain.ID
}

// Seed positions the allocator after the highest id seen at load time.
func (a *IDAllocator) Seed(maxExisting domain.ID) {
	if maxExisting < 0 {
		maxExisting = 0
	}
	a.next = maxExisting + 1
}

func (a *IDAllocator) Next() domain.ID {
	if a.next < 1 {
		a.next = 1
	}
	id := a.next
	a.next++
	return id
}

// Peek returns the id the next call to Next will produce.
func (a *IDAllocator) Peek() domain.ID {
	if a.next < 1 {
		return 1
	}
	return a.next
}
