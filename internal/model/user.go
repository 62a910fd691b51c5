package model

import "encoding/json"

// UserSummary is the slice of the user record cached with the session at login.
// It is never refreshed while the session lives.
type UserSummary struct {
	UserID     ID     `json:"userId"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	CurrentElo int    `json:"currentElo"`
	Wins       int    `json:"wins"`
	TotalGames int    `json:"totalGames"`
}

// User is an account as returned by the admin endpoints
type User struct {
	ID         ID        `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	IsActive   *bool     `json:"isActive,omitempty"`
	CurrentElo int       `json:"currentElo"`
	Wins       int       `json:"wins"`
	TotalGames int       `json:"totalGames"`
	CreatedAt  Timestamp `json:"createdAt,omitzero"`
}

// UnmarshalJSON resolves the userId/id naming split
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	var raw struct {
		alias
		UserID ID `json:"userId"`
		ID     ID `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.alias)
	u.ID = firstID(raw.UserID, raw.ID)
	return nil
}

// Active reports the account status; accounts without a status are active
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// AuthResponse is the flat body returned by a successful login
type AuthResponse struct {
	Token      string `json:"token"`
	UserID     ID     `json:"userId"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	Email      string `json:"email"`
	CurrentElo int    `json:"currentElo"`
	Wins       int    `json:"wins"`
	TotalGames int    `json:"totalGames"`
	Message    string `json:"message,omitempty"`
}

// Summary extracts the profile cached with the session
func (a AuthResponse) Summary() UserSummary {
	return UserSummary{
		UserID:     a.UserID,
		Username:   a.Username,
		Role:       a.Role,
		Email:      a.Email,
		CurrentElo: a.CurrentElo,
		Wins:       a.Wins,
		TotalGames: a.TotalGames,
	}
}

// Player is the record created through the player endpoint
type Player struct {
	ID          ID     `json:"id"`
	GroupID     ID     `json:"groupId"`
	DisplayName string `json:"displayName"`
}

// UnmarshalJSON resolves the playerId/id naming split
func (p *Player) UnmarshalJSON(data []byte) error {
	type alias Player
	var raw struct {
		alias
		PlayerID ID `json:"playerId"`
		ID       ID `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Player(raw.alias)
	p.ID = firstID(raw.PlayerID, raw.ID)
	return nil
}
