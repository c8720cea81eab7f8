package mafia

import (
	"math/rand"

	"github.com/gamehub4u/gamehub-server/internal/models"
)

// RolePlan builds the shuffled role list for n players.
//
// Authoritative rule: mafia = max(1, n/3); one doctor and one detective
// when n >= SpecialistThreshold; villagers fill the remaining seats.
func RolePlan(n int) []models.Role {
	mafiaCount := n / 3
	if mafiaCount < 1 {
		mafiaCount = 1
	}

	roles := make([]models.Role, 0, n)
	for i := 0; i < mafiaCount; i++ {
		roles = append(roles, models.RoleMafia)
	}
	if n >= SpecialistThreshold {
		roles = append(roles, models.RoleDoctor, models.RoleDetective)
	}
	for len(roles) < n {
		roles = append(roles, models.RoleVillager)
	}

	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})
	return roles
}
