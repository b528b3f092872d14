package feed

// Phase is the single source of truth for the controller's loading flags
type Phase int

const (
	IdleInitial Phase = iota
	LoadingInitial
	IdleReady
	LoadingMore
)

func (p Phase) String() string {
	switch p {
	case IdleInitial:
		return "idle_initial"
	case LoadingInitial:
		return "loading_initial"
	case IdleReady:
		return "idle_ready"
	case LoadingMore:
		return "loading_more"
	default:
		return "unknown"
	}
}

// Event drives a phase change
type Event int

const (
	EventMount Event = iota
	EventLoadMore
	EventResponse
)

// validTransitions lists the events each phase accepts. Anything missing is
// a no-op (e.g. a load-more while one is already in flight).
var validTransitions = map[Phase]map[Event]Phase{
	IdleInitial: {
		EventMount:    LoadingInitial,
		EventResponse: IdleReady,
	},
	LoadingInitial: {
		EventResponse: IdleReady,
	},
	IdleReady: {
		EventLoadMore: LoadingMore,
		EventResponse: IdleReady,
	},
	LoadingMore: {
		EventResponse: IdleReady,
	},
}

// Next returns the phase reached by e, and false when p does not accept e
func (p Phase) Next(e Event) (Phase, bool) {
	next, ok := validTransitions[p][e]
	if !ok {
		return p, false
	}
	return next, true
}
