package model

import "encoding/json"

// Level is a difficulty level of the game
type Level struct {
	ID         ID     `json:"id"`
	Name       string `json:"levelName"`
	BoardSize  int    `json:"boardSize"`
	TimeLimit  int    `json:"timeLimit"`
	Difficulty string `json:"difficulty,omitempty"`
}

// UnmarshalJSON resolves the levelId/id and levelName/name naming splits
func (l *Level) UnmarshalJSON(data []byte) error {
	type alias Level
	var raw struct {
		alias
		LevelID   ID     `json:"levelId"`
		ID        ID     `json:"id"`
		LevelName string `json:"levelName"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Level(raw.alias)
	l.ID = firstID(raw.LevelID, raw.ID)
	l.Name = raw.LevelName
	if l.Name == "" {
		l.Name = raw.Name
	}
	return nil
}

// LevelShipConfig is one ship allotment of a level
type LevelShipConfig struct {
	ShipTypeID ID  `json:"shipTypeId"`
	Quantity   int `json:"quantity"`
}
