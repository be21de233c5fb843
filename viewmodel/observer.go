// Package viewmodel keeps the local, denormalized lists a front-end binds to and patches
// them from bus events instead of re-querying the database.
package viewmodel

import (
	"context"
	"errors"
	"sync"

	"querry/events"
	"querry/logger"
	"querry/models"
)

// Field names an observable property of a list.
type Field string

const (
	FieldItems    Field = "items"
	FieldSelected Field = "selected"
)

// Page is the first screen shown after startup.
type Page int

const (
	PageWelcome     Page = 1
	PageCollections Page = 2
)

// StartPage shows the welcome page until the first collection exists.
func StartPage(collectionCount int) Page {
	if collectionCount > 0 {
		return PageCollections
	}
	return PageWelcome
}

type observers struct {
	mu        sync.Mutex
	callbacks map[Field][]func()
}

// OnChange registers fn to run after field changes. Callbacks run on the goroutine that
// applied the change, outside any list lock.
func (o *observers) OnChange(field Field, fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.callbacks == nil {
		o.callbacks = make(map[Field][]func())
	}
	o.callbacks[field] = append(o.callbacks[field], fn)
}

func (o *observers) notify(fields ...Field) {
	o.mu.Lock()
	var pending []func()
	for _, f := range fields {
		pending = append(pending, o.callbacks[f]...)
	}
	o.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
}

// Applier patches local state from an event.
type Applier interface {
	Apply(ev events.Event)
}

// Run feeds every event from sub to the appliers until ctx ends or the bus closes.
// A closed bus ends the loop without error.
func Run(ctx context.Context, sub *events.Subscription, appliers ...Applier) error {
	for {
		ev, err := sub.Next(ctx)
		if err != nil {
			if errors.Is(err, models.ErrChannelClosed) {
				logger.Debug("viewmodel: event bus closed, stopping")
				return nil
			}
			return err
		}
		for _, a := range appliers {
			a.Apply(ev)
		}
	}
}
