package particles

// ActionContext is the per-event data an action is evaluated with. A nil
// ActionContext means the action runs outside of any event.
type ActionContext interface {
	isActionContext()
}

// CollisionEvent is the action context of a collision: the surface normal at
// the hit point, indexed by particle index.
type CollisionEvent struct {
	Normals []Float3
}

func (*CollisionEvent) isActionContext() {}
