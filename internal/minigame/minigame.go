package minigame

import (
	"encoding/json"
	"fmt"
)

// GameType discriminates the MiniGame data union.
type GameType string

const (
	TypeMemory      GameType = "memory"
	TypeAssociation GameType = "association"
	TypeOrder       GameType = "order"
	TypeIntruder    GameType = "intruder"
	TypeCategorize  GameType = "categorize"
)

// GameData is the payload side of the tagged union.
type GameData interface {
	gameType() GameType
}

// Pair is a two-sided card or concept/match pairing.
type Pair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// MemoryGameData holds the pairs to match face-down.
type MemoryGameData struct {
	Pairs []Pair `json:"pairs"`
}

// AssociationGameData holds concept/definition pairs for drag-and-drop.
type AssociationGameData struct {
	Pairs []Pair `json:"pairs"`
}

// OrderGameData holds items in their single correct order.
type OrderGameData struct {
	Items []string `json:"items"`
}

// IntruderGameData holds a themed group plus the one item that does not belong.
type IntruderGameData struct {
	Theme    string   `json:"theme"`
	Items    []string `json:"items"`
	Intruder string   `json:"intruder"`
}

// CategorizeGameData maps category names to the items that belong to them.
type CategorizeGameData struct {
	Categories map[string][]string `json:"categories"`
}

func (MemoryGameData) gameType() GameType      { return TypeMemory }
func (AssociationGameData) gameType() GameType { return TypeAssociation }
func (OrderGameData) gameType() GameType       { return TypeOrder }
func (IntruderGameData) gameType() GameType    { return TypeIntruder }
func (CategorizeGameData) gameType() GameType  { return TypeCategorize }

// MiniGame is an authored game. Data's concrete type is keyed by Type.
type MiniGame struct {
	ID    string   `json:"id"`
	Title string   `json:"title,omitempty"`
	Type  GameType `json:"type"`
	Data  GameData `json:"data"`
}

type miniGameJSON struct {
	ID    string          `json:"id"`
	Title string          `json:"title,omitempty"`
	Type  GameType        `json:"type"`
	Data  json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes Data into the variant selected by the sibling type field.
func (g *MiniGame) UnmarshalJSON(raw []byte) error {
	var aux miniGameJSON
	if err := json.Unmarshal(raw, &aux); err != nil {
		return err
	}
	g.ID = aux.ID
	g.Title = aux.Title
	g.Type = aux.Type

	var data GameData
	switch aux.Type {
	case TypeMemory:
		data = &MemoryGameData{}
	case TypeAssociation:
		data = &AssociationGameData{}
	case TypeOrder:
		data = &OrderGameData{}
	case TypeIntruder:
		data = &IntruderGameData{}
	case TypeCategorize:
		data = &CategorizeGameData{}
	default:
		return fmt.Errorf("unknown mini-game type %q", aux.Type)
	}
	if len(aux.Data) > 0 {
		if err := json.Unmarshal(aux.Data, data); err != nil {
			return fmt.Errorf("decode %s game data: %w", aux.Type, err)
		}
	}

	switch v := data.(type) {
	case *MemoryGameData:
		g.Data = *v
	case *AssociationGameData:
		g.Data = *v
	case *OrderGameData:
		g.Data = *v
	case *IntruderGameData:
		g.Data = *v
	case *CategorizeGameData:
		g.Data = *v
	}
	return nil
}
