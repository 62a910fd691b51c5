package model

import "encoding/json"

// ShipType is a ship catalog entry
type ShipType struct {
	ID        ID     `json:"id"`
	Name      string `json:"shipName"`
	Size      int    `json:"size"`
	ModelCode string `json:"modelCode"`
}

// UnmarshalJSON resolves the shipTypeId/id and shipName/name naming splits
func (s *ShipType) UnmarshalJSON(data []byte) error {
	type alias ShipType
	var raw struct {
		alias
		ShipTypeID ID     `json:"shipTypeId"`
		ID         ID     `json:"id"`
		ShipName   string `json:"shipName"`
		Name       string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ShipType(raw.alias)
	s.ID = firstID(raw.ShipTypeID, raw.ID)
	s.Name = raw.ShipName
	if s.Name == "" {
		s.Name = raw.Name
	}
	return nil
}
