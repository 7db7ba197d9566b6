package audit

// WithEntity sets the entity the action was performed on.
func WithEntity(entityType, entityID string) EventOption {
	return func(e *Event) {
		e.EntityType = entityType
		e.EntityID = entityID
	}
}

// WithActor sets who performed the action.
func WithActor(actorID string) EventOption {
	return func(e *Event) {
		e.ActorID = actorID
	}
}

// WithDescription sets the human-readable summary of the action.
func WithDescription(description string) EventOption {
	return func(e *Event) {
		e.Description = description
	}
}

// WithMetadata adds a metadata entry to the event.
func WithMetadata(key string, value any) EventOption {
	return func(e *Event) {
		if e.Metadata == nil {
			e.Metadata = make(map[string]any)
		}
		e.Metadata[key] = value
	}
}
