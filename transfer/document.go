// Package transfer moves collections in and out of the database as YAML documents and
// reads Postman v2.1 collection exports.
package transfer

import (
	"context"
	"fmt"
	"io"
	"slices"

	"querry/core"
	"querry/database"
	"querry/logger"
	"querry/models"

	"gopkg.in/yaml.v3"
)

// Document is the portable form of one collection. Requests are listed oldest first.
type Document struct {
	Name     string    `yaml:"name" json:"name"`
	Icon     string    `yaml:"icon,omitempty" json:"icon,omitempty"`
	Headers  []Header  `yaml:"headers,omitempty" json:"headers,omitempty"`
	Requests []Request `yaml:"requests" json:"requests"`
}

type Header struct {
	Name  string `yaml:"name" json:"name"`
	Value string `yaml:"value" json:"value"`
}

type Request struct {
	Name     string            `yaml:"name" json:"name"`
	URL      string            `yaml:"url,omitempty" json:"url,omitempty"`
	Protocol models.Protocol   `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Method   models.HTTPMethod `yaml:"method,omitempty" json:"method,omitempty"`
}

// ExportCollection reads a collection with its headers and requests.
func ExportCollection(ctx context.Context, store *database.Store, id string) (Document, error) {
	c, err := store.GetCollectionByID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	headers, err := store.GetHeadersByCollectionID(ctx, id)
	if err != nil {
		return Document{}, err
	}
	requests, err := store.GetRequestsByCollectionID(ctx, id)
	if err != nil {
		return Document{}, err
	}

	doc := Document{Name: c.Name, Icon: c.Icon, Requests: make([]Request, 0, len(requests))}
	for _, h := range headers {
		doc.Headers = append(doc.Headers, Header{Name: h.Name, Value: h.Value})
	}
	for _, r := range slices.Backward(requests) {
		doc.Requests = append(doc.Requests, Request{Name: r.Name, URL: r.URL, Protocol: r.Protocol, Method: r.HTTPMethod})
	}
	return doc, nil
}

func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode collection document: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a document. Undeclared protocol or method codes fail with
// models.ErrValidation.
func ReadYAML(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return doc, fmt.Errorf("%w: empty collection document", models.ErrValidation)
		}
		return doc, fmt.Errorf("failed to parse collection document: %w", err)
	}
	return doc, doc.Validate()
}

// Validate checks every request code so an import never stops halfway.
func (d Document) Validate() error {
	for i, r := range d.Requests {
		if r.Protocol != "" && !r.Protocol.Valid() {
			return fmt.Errorf("%w: request %d (%s): unknown protocol code %q", models.ErrValidation, i, r.Name, string(r.Protocol))
		}
		if r.Method != "" && !r.Method.Valid() {
			return fmt.Errorf("%w: request %d (%s): unknown http method code %q", models.ErrValidation, i, r.Name, string(r.Method))
		}
	}
	return nil
}

// Import creates a new collection from doc through the service, so every view hears
// about it. If a step fails the partially imported collection is removed again.
func Import(ctx context.Context, svc *core.Service, doc Document) (models.Collection, error) {
	if err := doc.Validate(); err != nil {
		return models.Collection{}, err
	}

	c, err := svc.NewCollection(ctx, doc.Name)
	if err != nil {
		return c, err
	}
	if err := importInto(ctx, svc, c, doc); err != nil {
		if delErr := svc.DeleteCollection(ctx, c.ID); delErr != nil {
			logger.Error("Import: cleaning up collection %s failed: %v", c.ID, delErr)
		}
		return models.Collection{}, err
	}

	c, err = svc.GetCollection(ctx, c.ID)
	if err != nil {
		return c, err
	}
	logger.Info("Imported collection '%s' with %d request(s)", c.Name, c.RequestCount)
	return c, nil
}

func importInto(ctx context.Context, svc *core.Service, c models.Collection, doc Document) error {
	if doc.Icon != "" && doc.Icon != c.Icon {
		if _, err := svc.UpdateCollection(ctx, c.ID, models.CollectionUpdate{Name: c.Name, Icon: doc.Icon}); err != nil {
			return err
		}
	}
	for _, h := range doc.Headers {
		if _, err := svc.AddHeader(ctx, c.ID, models.HeaderRequest{Name: h.Name, Value: h.Value}); err != nil {
			return err
		}
	}
	for _, r := range doc.Requests {
		created, err := svc.NewRequest(ctx, r.Protocol, c.ID)
		if err != nil {
			return err
		}
		upd := models.RequestUpdate{URL: &r.URL}
		name := models.TrimmedOr(r.Name, models.DefaultRequestName)
		if name != created.Name {
			upd.Name = &name
		}
		if r.Method != "" && r.Method != created.HTTPMethod {
			method := r.Method
			upd.HTTPMethod = &method
		}
		if _, err := svc.UpdateRequest(ctx, created.ID, upd); err != nil {
			return err
		}
	}
	return nil
}
