package web

import (
	"encoding/json"
	"net/http"

	"github.com/peterkuimelis/setrogue/internal/enemy"
)

// EnemyInfo is the JSON representation of an enemy for the /api/enemies endpoint.
type EnemyInfo struct {
	Name        string   `json:"name"`
	Tier        int      `json:"tier"`
	Description string   `json:"description"`
	Behaviors   []string `json:"behaviors"`
}

// WeaponInfo is the JSON representation of a weapon for the /api/weapons endpoint.
type WeaponInfo struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Tier    int                `json:"tier"`
	Special string             `json:"special,omitempty"`
	Effects map[string]float64 `json:"effects"`
}

func (s *Server) handleEnemies(w http.ResponseWriter, r *http.Request) {
	reg := s.lobby.Registry
	enemies := []EnemyInfo{}
	for _, name := range reg.Names() {
		inst, err := reg.Create(name)
		if err != nil {
			continue
		}
		enemies = append(enemies, EnemyInfo{
			Name:        inst.Name,
			Tier:        inst.Tier,
			Description: inst.Description,
			Behaviors:   inst.BehaviorNames(),
		})
	}
	writeJSON(w, enemies)
}

func (s *Server) handleWeapons(w http.ResponseWriter, r *http.Request) {
	weapons := []WeaponInfo{}
	for _, wp := range s.lobby.Weapons() {
		weapons = append(weapons, WeaponInfo{
			ID:      wp.ID,
			Name:    wp.Name,
			Tier:    wp.Tier,
			Special: string(wp.SpecialEffect),
			Effects: wp.Effects,
		})
	}
	writeJSON(w, weapons)
}

func (s *Server) handleBehaviors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, enemy.BehaviorNames())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
