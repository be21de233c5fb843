package viewmodel

import (
	"sync"

	"querry/events"
	"querry/models"
)

// RequestItem is one row of the request list of the open collection.
type RequestItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Protocol models.Protocol   `json:"protocol"`
	Method   models.HTTPMethod `json:"method"`
}

func requestItem(r models.Request) RequestItem {
	return RequestItem{ID: r.ID, Name: r.Name, URL: r.URL, Protocol: r.Protocol, Method: r.HTTPMethod}
}

// RequestList holds the requests of the active collection and the selected request.
type RequestList struct {
	observers
	mu           sync.RWMutex
	collectionID string
	items        []RequestItem
	selected     string
}

func NewRequestList(collectionID string, requests []models.Request) *RequestList {
	l := &RequestList{}
	l.open(collectionID, requests)
	return l
}

func (l *RequestList) open(collectionID string, requests []models.Request) {
	items := make([]RequestItem, 0, len(requests))
	for _, r := range requests {
		items = append(items, requestItem(r))
	}
	l.mu.Lock()
	l.collectionID = collectionID
	l.items = items
	l.selected = ""
	l.mu.Unlock()
}

// Open switches the list to another collection.
func (l *RequestList) Open(collectionID string, requests []models.Request) {
	l.open(collectionID, requests)
	l.notify(FieldItems, FieldSelected)
}

func (l *RequestList) CollectionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.collectionID
}

func (l *RequestList) Items() []RequestItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]RequestItem(nil), l.items...)
}

// Selected returns the id of the selected request, or "" when nothing is selected.
func (l *RequestList) Selected() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.selected
}

func (l *RequestList) indexLocked(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// patch runs fn on the row with id and reports whether it existed.
func (l *RequestList) patch(id string, fn func(*RequestItem)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.indexLocked(id)
	if i < 0 {
		return false
	}
	fn(&l.items[i])
	return true
}

// Upsert applies a request returned directly by the repository.
func (l *RequestList) Upsert(r models.Request) {
	l.mu.Lock()
	if r.CollectionID != l.collectionID {
		l.mu.Unlock()
		return
	}
	item := requestItem(r)
	if i := l.indexLocked(r.ID); i >= 0 {
		l.items[i] = item
	} else {
		l.items = append([]RequestItem{item}, l.items...)
	}
	l.mu.Unlock()
	l.notify(FieldItems)
}

func (l *RequestList) remove(id string) {
	l.mu.Lock()
	i := l.indexLocked(id)
	wasSelected := false
	if i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
		if l.selected == id {
			l.selected = ""
			wasSelected = true
		}
	}
	l.mu.Unlock()
	switch {
	case wasSelected:
		l.notify(FieldItems, FieldSelected)
	case i >= 0:
		l.notify(FieldItems)
	}
}

func (l *RequestList) Apply(ev events.Event) {
	switch ev.Kind {
	case events.KindCollectionDeleted:
		if ev.CollectionID == l.CollectionID() {
			l.Open("", nil)
		}
	case events.KindRequestCreated, events.KindRequestUpdated:
		l.Upsert(ev.Request)
	case events.KindRequestDeleted:
		l.remove(ev.RequestID)
	case events.KindRequestRenamed:
		if l.patch(ev.RequestID, func(it *RequestItem) { it.Name = ev.Name }) {
			l.notify(FieldItems)
		}
	case events.KindRequestMethodChanged:
		if l.patch(ev.RequestID, func(it *RequestItem) { it.Method = ev.Method }) {
			l.notify(FieldItems)
		}
	case events.KindRequestSelected:
		l.mu.Lock()
		changed := l.indexLocked(ev.RequestID) >= 0 && l.selected != ev.RequestID
		if changed {
			l.selected = ev.RequestID
		}
		l.mu.Unlock()
		if changed {
			l.notify(FieldSelected)
		}
	}
}
