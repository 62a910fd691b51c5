package model

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"
)

// ConfigField is one top-level entry of a game configuration
type ConfigField struct {
	Key   string
	Value string
}

// GameConfig is the configuration of a level as served to the game. Its
// shape is owned by the backend, so it is kept as the ordered list of
// top-level fields with typed accessors for the fields the console knows.
type GameConfig struct {
	LevelID ID
	raw     json.RawMessage
	fields  []ConfigField
}

// UnmarshalJSON keeps the raw object and its field order
func (c *GameConfig) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		return errors.New("game config is not an object")
	}

	c.raw = append(json.RawMessage(nil), data...)
	c.fields = c.fields[:0]
	res.ForEach(func(key, value gjson.Result) bool {
		v := value.Raw
		if value.Type == gjson.String {
			v = value.Str
		}
		c.fields = append(c.fields, ConfigField{Key: key.String(), Value: v})
		return true
	})

	if id := res.Get("levelId"); id.Exists() {
		c.LevelID = ID(id.String())
	} else if id := res.Get("id"); id.Exists() {
		c.LevelID = ID(id.String())
	}
	return nil
}

// MarshalJSON echoes the backend object unchanged
func (c GameConfig) MarshalJSON() ([]byte, error) {
	if len(c.raw) == 0 {
		return []byte("{}"), nil
	}
	return c.raw, nil
}

// Fields returns the top-level fields in backend order
func (c GameConfig) Fields() []ConfigField {
	return c.fields
}

// BoardSize returns the configured board size, zero when absent
func (c GameConfig) BoardSize() int {
	return int(gjson.GetBytes(c.raw, "boardSize").Int())
}

// TimeLimit returns the configured time limit, zero when absent
func (c GameConfig) TimeLimit() int {
	return int(gjson.GetBytes(c.raw, "timeLimit").Int())
}

// Name returns the level name carried in the config, if any
func (c GameConfig) Name() string {
	if n := gjson.GetBytes(c.raw, "levelName"); n.Exists() {
		return n.String()
	}
	return gjson.GetBytes(c.raw, "name").String()
}

// Ships returns the ship allotments carried in the config, if any
func (c GameConfig) Ships() []LevelShipConfig {
	var ships []LevelShipConfig
	gjson.GetBytes(c.raw, "ships").ForEach(func(_, v gjson.Result) bool {
		id := v.Get("shipTypeId")
		if !id.Exists() {
			id = v.Get("id")
		}
		ships = append(ships, LevelShipConfig{
			ShipTypeID: ID(id.String()),
			Quantity:   int(v.Get("quantity").Int()),
		})
		return true
	})
	return ships
}
