package viewmodel

import (
	"errors"
	"sync"

	"querry/events"
	"querry/logger"
	"querry/models"
)

// CollectionItem is one row of the sidebar.
type CollectionItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	RequestCount int    `json:"request_count"`
}

func collectionItem(c models.Collection) CollectionItem {
	return CollectionItem{ID: c.ID, Name: c.Name, Icon: c.Icon, RequestCount: c.RequestCount}
}

// CollectionList is the newest-first list of collections shown in the sidebar.
type CollectionList struct {
	observers
	mu    sync.RWMutex
	items []CollectionItem
}

func NewCollectionList(collections []models.Collection) *CollectionList {
	l := &CollectionList{}
	l.reset(collections)
	return l
}

func (l *CollectionList) reset(collections []models.Collection) {
	items := make([]CollectionItem, 0, len(collections))
	for _, c := range collections {
		items = append(items, collectionItem(c))
	}
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
}

// Set replaces the whole list, for example with search results.
func (l *CollectionList) Set(collections []models.Collection) {
	l.reset(collections)
	l.notify(FieldItems)
}

// Items returns a copy of the current rows.
func (l *CollectionList) Items() []CollectionItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]CollectionItem(nil), l.items...)
}

func (l *CollectionList) Get(id string) (CollectionItem, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := l.indexLocked(id); i >= 0 {
		return l.items[i], true
	}
	return CollectionItem{}, false
}

func (l *CollectionList) indexLocked(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Upsert applies a direct repository result: an existing row is replaced in place, a new
// one goes to the top.
func (l *CollectionList) Upsert(c models.Collection) {
	l.mu.Lock()
	item := collectionItem(c)
	if i := l.indexLocked(c.ID); i >= 0 {
		l.items[i] = item
	} else {
		l.items = append([]CollectionItem{item}, l.items...)
	}
	l.mu.Unlock()
	l.notify(FieldItems)
}

// Remove drops a row. Removing an unknown id is a no-op.
func (l *CollectionList) Remove(id string) {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i >= 0 {
		l.items = append(l.items[:i], l.items[i+1:]...)
	}
	l.mu.Unlock()
	if i >= 0 {
		l.notify(FieldItems)
	}
}

func (l *CollectionList) adjustCount(id string, delta int) {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i >= 0 {
		l.items[i].RequestCount = max(0, l.items[i].RequestCount+delta)
	}
	l.mu.Unlock()
	if i >= 0 {
		l.notify(FieldItems)
	}
}

func (l *CollectionList) Apply(ev events.Event) {
	switch ev.Kind {
	case events.KindCollectionDeleted:
		l.Remove(ev.CollectionID)
	case events.KindCollectionCreated, events.KindCollectionUpdated:
		l.Upsert(ev.Collection)
	case events.KindRequestCreated:
		l.adjustCount(ev.CollectionID, 1)
	case events.KindRequestDeleted:
		l.adjustCount(ev.CollectionID, -1)
	}
}

// CollectionLoader reads the stored state of one collection.
type CollectionLoader func(id string) (models.Collection, error)

// CollectionRefresher applies events to a list the way Apply does, except that request
// events re-read the collection instead of adjusting its count by one. Events published
// between Subscribe and the snapshot the list was built from are then harmless.
type CollectionRefresher struct {
	list *CollectionList
	load CollectionLoader
}

func NewCollectionRefresher(list *CollectionList, load CollectionLoader) *CollectionRefresher {
	return &CollectionRefresher{list: list, load: load}
}

func (r *CollectionRefresher) Apply(ev events.Event) {
	switch ev.Kind {
	case events.KindRequestCreated, events.KindRequestDeleted:
		if _, ok := r.list.Get(ev.CollectionID); !ok {
			return
		}
		c, err := r.load(ev.CollectionID)
		switch {
		case errors.Is(err, models.ErrNotFound):
			r.list.Remove(ev.CollectionID)
		case err != nil:
			logger.Warn("viewmodel: reloading collection %s: %v", ev.CollectionID, err)
		default:
			r.list.Upsert(c)
		}
	default:
		r.list.Apply(ev)
	}
}
