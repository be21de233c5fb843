// Package core turns a front-end action into a repository call followed by the event
// that lets other views catch up.
package core

import (
	"context"

	"querry/database"
	"querry/events"
	"querry/icons"
	"querry/logger"
	"querry/models"
	"querry/viewmodel"
)

// Service is the single entry point used by the CLI and the JSON API for mutations.
// The caller should apply the returned row itself; published events are meant for other
// subscribers.
type Service struct {
	store *database.Store
	bus   *events.Bus
	icons *icons.Pack
}

func NewService(store *database.Store, bus *events.Bus, pack *icons.Pack) *Service {
	return &Service{store: store, bus: bus, icons: pack}
}

func (s *Service) Store() *database.Store { return s.store }
func (s *Service) Bus() *events.Bus       { return s.bus }

// publish never fails the calling operation: front-end sync is best effort.
func (s *Service) publish(ev events.Event) {
	if err := s.bus.Publish(ev); err != nil {
		logger.Warn("Event %s not published: %v", ev.Kind, err)
	}
}

// Startup reports how many collections exist and which page to open first.
func (s *Service) Startup(ctx context.Context) (models.StartupResponse, error) {
	n, err := s.store.CountCollections(ctx)
	if err != nil {
		return models.StartupResponse{}, err
	}
	return models.StartupResponse{Page: int(viewmodel.StartPage(n)), CollectionCount: n}, nil
}

func (s *Service) ListCollections(ctx context.Context, query string) ([]models.Collection, error) {
	if query == "" {
		return s.store.GetAllCollections(ctx)
	}
	return s.store.SearchCollections(ctx, query)
}

func (s *Service) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	return s.store.GetCollectionByID(ctx, id)
}

func (s *Service) NewCollection(ctx context.Context, name string) (models.Collection, error) {
	c, err := s.store.CreateCollection(ctx, name)
	if err != nil {
		return c, err
	}
	logger.Info("Collection '%s' created (%s)", c.Name, c.ID)
	s.publish(events.CollectionCreated(c))
	return c, nil
}

func (s *Service) UpdateCollection(ctx context.Context, id string, upd models.CollectionUpdate) (models.Collection, error) {
	c, err := s.store.UpdateCollection(ctx, id, upd)
	if err != nil {
		return c, err
	}
	s.publish(events.CollectionUpdated(c))
	return c, nil
}

// RenameCollection keeps the icon and passes the stored count through unchanged.
func (s *Service) RenameCollection(ctx context.Context, id, name string) (models.Collection, error) {
	current, err := s.store.GetCollectionByID(ctx, id)
	if err != nil {
		return current, err
	}
	return s.UpdateCollection(ctx, id, models.CollectionUpdate{Name: name, Icon: current.Icon, RequestCount: current.RequestCount})
}

func (s *Service) DeleteCollection(ctx context.Context, id string) error {
	if err := s.store.DeleteCollection(ctx, id); err != nil {
		return err
	}
	logger.Info("Collection %s deleted", id)
	s.publish(events.CollectionDeleted(id))
	return nil
}

func (s *Service) ListRequests(ctx context.Context, collectionID string) ([]models.Request, error) {
	return s.store.GetRequestsByCollectionID(ctx, collectionID)
}

func (s *Service) GetRequest(ctx context.Context, id string) (models.Request, error) {
	return s.store.GetRequestByID(ctx, id)
}

func (s *Service) NewRequest(ctx context.Context, protocol models.Protocol, collectionID string) (models.Request, error) {
	if protocol == "" {
		protocol = models.ProtocolHTTP
	}
	r, err := s.store.CreateRequest(ctx, protocol, collectionID)
	if err != nil {
		return r, err
	}
	s.publish(events.RequestCreated(r))
	return r, nil
}

func (s *Service) RenameRequest(ctx context.Context, id, name string) (models.Request, error) {
	return s.UpdateRequest(ctx, id, models.RequestUpdate{Name: &name})
}

func (s *Service) ChangeRequestMethod(ctx context.Context, id string, method models.HTTPMethod) (models.Request, error) {
	return s.UpdateRequest(ctx, id, models.RequestUpdate{HTTPMethod: &method})
}

// UpdateRequest applies a partial update and publishes a rename and/or method change for
// the fields that were set. A URL or protocol change publishes the full row.
func (s *Service) UpdateRequest(ctx context.Context, id string, upd models.RequestUpdate) (models.Request, error) {
	r, err := s.store.UpdateRequest(ctx, id, upd)
	if err != nil {
		return r, err
	}
	if upd.Name != nil {
		s.publish(events.RequestRenamed(r.Name, r.ID, r.CollectionID))
	}
	if upd.HTTPMethod != nil {
		s.publish(events.RequestMethodChanged(r.HTTPMethod, r.ID, r.CollectionID))
	}
	if upd.URL != nil || upd.Protocol != nil {
		s.publish(events.RequestUpdated(r))
	}
	return r, nil
}

func (s *Service) DeleteRequest(ctx context.Context, id string) error {
	r, err := s.store.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteRequest(ctx, id); err != nil {
		return err
	}
	s.publish(events.RequestDeleted(r.ID, r.CollectionID))
	return nil
}

// SelectRequest only notifies other views; nothing is stored.
func (s *Service) SelectRequest(ctx context.Context, id string) error {
	if _, err := s.store.GetRequestByID(ctx, id); err != nil {
		return err
	}
	s.publish(events.RequestSelected(id))
	return nil
}

func (s *Service) ListHeaders(ctx context.Context, collectionID string) ([]models.CollectionHeader, error) {
	if _, err := s.store.GetCollectionByID(ctx, collectionID); err != nil {
		return nil, err
	}
	return s.store.GetHeadersByCollectionID(ctx, collectionID)
}

func (s *Service) AddHeader(ctx context.Context, collectionID string, h models.HeaderRequest) (models.CollectionHeader, error) {
	return s.store.CreateHeader(ctx, collectionID, h.Name, h.Value)
}

func (s *Service) UpdateHeader(ctx context.Context, id string, h models.HeaderRequest) (models.CollectionHeader, error) {
	return s.store.UpdateHeader(ctx, id, h.Name, h.Value)
}

func (s *Service) DeleteHeader(ctx context.Context, id string) error {
	return s.store.DeleteHeader(ctx, id)
}

// IconNames lists the installed icon pack.
func (s *Service) IconNames() ([]string, error) {
	return s.icons.Names()
}

// SearchIcons filters the icon pack by a case-insensitive name fragment.
func (s *Service) SearchIcons(term string) ([]string, error) {
	return s.icons.Search(term)
}

// ResolveIcon maps an icon name to its file.
func (s *Service) ResolveIcon(name string) (string, error) {
	return s.icons.Resolve(name)
}
