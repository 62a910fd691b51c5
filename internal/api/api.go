// Package api maps each backend resource to thin functions, one HTTP call
// each. Request bodies are built from whitelisted fields only and list
// responses are normalized before they are returned.
package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/mcoot/fleetbattle-console/internal/model"
)

// Backend sends requests to the REST backend. *client.Client implements it.
type Backend interface {
	Get(ctx context.Context, path string) ([]byte, error)
	Post(ctx context.Context, path string, body any) ([]byte, error)
	Put(ctx context.Context, path string, body any) ([]byte, error)
	Delete(ctx context.Context, path string) ([]byte, error)
}

// Ack is what a mutation reports back. Mutation responses differ per
// endpoint, so only an id and a message are picked out when present.
type Ack struct {
	ID      model.ID `json:"id,omitempty"`
	Message string   `json:"message,omitempty"`
}

func ackFromBody(body []byte, idFields ...string) Ack {
	if !gjson.ValidBytes(body) {
		return Ack{}
	}
	res := gjson.ParseBytes(body)
	if data := res.Get("data"); data.IsObject() {
		res = data
	}

	var ack Ack
	for _, field := range append(idFields, "id") {
		if v := res.Get(field); v.Exists() && v.String() != "" {
			ack.ID = model.ID(v.String())
			break
		}
	}
	ack.Message = res.Get("message").String()
	return ack
}

// resourcePath joins a collection path and an escaped record id
func resourcePath(collection string, id model.ID, suffix ...string) string {
	p := fmt.Sprintf("%s/%s", collection, url.PathEscape(id.String()))
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func requireID(id model.ID) error {
	if id.IsZero() {
		return model.NewValidationError("id", "is required")
	}
	return nil
}
