package generation

import "github.com/KirkDiggler/rpg-toolkit/core"

const entityType = "rando"

// generationEntity identifies a run as the source of its events
type generationEntity struct {
	id string
}

// GetID returns the rando id
func (e *generationEntity) GetID() string {
	return e.id
}

// GetType returns the entity type
func (e *generationEntity) GetType() string {
	return entityType
}

var _ core.Entity = (*generationEntity)(nil)
