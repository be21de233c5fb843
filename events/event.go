package events

import "querry/models"

// Kind identifies the variant carried by an Event.
type Kind string

const (
	KindCollectionDeleted    Kind = "collection_deleted"
	KindCollectionCreated    Kind = "collection_created"
	KindCollectionUpdated    Kind = "collection_updated"
	KindRequestCreated       Kind = "request_created"
	KindRequestDeleted       Kind = "request_deleted"
	KindRequestRenamed       Kind = "request_renamed"
	KindRequestMethodChanged Kind = "request_method_changed"
	KindRequestUpdated       Kind = "request_updated"
	KindRequestSelected      Kind = "request_selected"
)

// Event is a domain notification delivered to every subscriber. It is passed by value, so
// a subscriber can never change what another one sees. Only the fields that belong to
// the Kind are set.
type Event struct {
	Kind         Kind              `json:"kind"`
	CollectionID string            `json:"collection_id,omitempty"`
	RequestID    string            `json:"request_id,omitempty"`
	Name         string            `json:"name,omitempty"`
	Method       models.HTTPMethod `json:"method,omitempty"`
	Collection   models.Collection `json:"collection"`
	Request      models.Request    `json:"request"`
}

func CollectionDeleted(collectionID string) Event {
	return Event{Kind: KindCollectionDeleted, CollectionID: collectionID}
}

func CollectionCreated(c models.Collection) Event {
	return Event{Kind: KindCollectionCreated, CollectionID: c.ID, Collection: c}
}

func CollectionUpdated(c models.Collection) Event {
	return Event{Kind: KindCollectionUpdated, CollectionID: c.ID, Collection: c}
}

func RequestCreated(r models.Request) Event {
	return Event{Kind: KindRequestCreated, RequestID: r.ID, CollectionID: r.CollectionID, Request: r}
}

func RequestDeleted(requestID, collectionID string) Event {
	return Event{Kind: KindRequestDeleted, RequestID: requestID, CollectionID: collectionID}
}

func RequestRenamed(name, requestID, collectionID string) Event {
	return Event{Kind: KindRequestRenamed, Name: name, RequestID: requestID, CollectionID: collectionID}
}

func RequestMethodChanged(method models.HTTPMethod, requestID, collectionID string) Event {
	return Event{Kind: KindRequestMethodChanged, Method: method, RequestID: requestID, CollectionID: collectionID}
}

// RequestUpdated carries the whole row after a change to fields without a dedicated event.
func RequestUpdated(r models.Request) Event {
	return Event{Kind: KindRequestUpdated, RequestID: r.ID, CollectionID: r.CollectionID, Request: r}
}

func RequestSelected(requestID string) Event {
	return Event{Kind: KindRequestSelected, RequestID: requestID}
}
