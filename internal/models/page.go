package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Page holds one board page. The whiteboard objects inside are opaque to this
// layer, clients own their shape schema.
type Page struct {
	PageNumber        int               `json:"pageNumber"`
	WhiteBoardObjects WhiteBoardObjects `json:"whiteBoardObjects"`
}

// WhiteBoardObjects is the opaque object collection of one page. Clients may
// send a single object where a collection is expected, it is wrapped into a
// one-element collection on decode.
type WhiteBoardObjects []map[string]interface{}

func (w *WhiteBoardObjects) UnmarshalJSON(data []byte) error {
	var objects []map[string]interface{}
	if err := json.Unmarshal(data, &objects); err == nil {
		*w = objects
		return nil
	}
	var single map[string]interface{}
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*w = WhiteBoardObjects{single}
	return nil
}

// To satisfy postgres jsonb data type
type Pages []Page

func (p *Pages) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, p)
}

func (p Pages) Value() (driver.Value, error) {
	return json.Marshal(p)
}
