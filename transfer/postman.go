package transfer

import (
	"fmt"
	"strings"

	"querry/models"

	"github.com/tidwall/gjson"
)

var postmanMethods = map[string]models.HTTPMethod{
	"GET":    models.MethodGet,
	"POST":   models.MethodPost,
	"PUT":    models.MethodPut,
	"DELETE": models.MethodDelete,
}

// ParsePostman reads a Postman v2.1 collection export. Folders are flattened in document
// order. A request using a method other than GET, POST, PUT or DELETE fails the whole
// parse with models.ErrValidation.
func ParsePostman(data []byte) (Document, error) {
	if !gjson.ValidBytes(data) {
		return Document{}, fmt.Errorf("%w: postman export is not valid JSON", models.ErrValidation)
	}
	root := gjson.ParseBytes(data)
	items := root.Get("item")
	if !items.IsArray() {
		return Document{}, fmt.Errorf("%w: postman export has no item array", models.ErrValidation)
	}

	doc := Document{Name: models.TrimmedOr(root.Get("info.name").String(), models.DefaultCollectionName)}
	if err := walkPostmanItems(items, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func walkPostmanItems(items gjson.Result, doc *Document) error {
	var err error
	items.ForEach(func(_, item gjson.Result) bool {
		if children := item.Get("item"); children.IsArray() {
			err = walkPostmanItems(children, doc)
			return err == nil
		}
		var req Request
		req, err = postmanRequest(item)
		if err != nil {
			return false
		}
		doc.Requests = append(doc.Requests, req)
		return true
	})
	return err
}

func postmanRequest(item gjson.Result) (Request, error) {
	name := models.TrimmedOr(item.Get("name").String(), models.DefaultRequestName)
	request := item.Get("request")

	// A request given as a bare string is a GET on that URL.
	if request.Type == gjson.String {
		return Request{Name: name, URL: request.String(), Protocol: models.ProtocolHTTP, Method: models.MethodGet}, nil
	}

	rawMethod := strings.ToUpper(strings.TrimSpace(request.Get("method").String()))
	if rawMethod == "" {
		rawMethod = "GET"
	}
	method, ok := postmanMethods[rawMethod]
	if !ok {
		return Request{}, fmt.Errorf("%w: request %q uses unsupported method %s", models.ErrValidation, name, rawMethod)
	}

	url := request.Get("url")
	rawURL := url.String()
	if url.IsObject() {
		rawURL = url.Get("raw").String()
	}
	return Request{Name: name, URL: rawURL, Protocol: models.ProtocolHTTP, Method: method}, nil
}
