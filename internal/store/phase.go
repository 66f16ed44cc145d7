package store

// Phase is where the two-step load currently stands.
type Phase int

const (
	Idle Phase = iota
	FirstPageLoading
	FirstPageLoaded
	BackgroundLoading
	FullyLoaded
	// PartiallyLoaded follows a failed background load: page one is all
	// there is, and nothing retries automatically.
	PartiallyLoaded
	Error
)

var phaseNames = map[Phase]string{
	Idle:              "idle",
	FirstPageLoading:  "first-page-loading",
	FirstPageLoaded:   "first-page-loaded",
	BackgroundLoading: "background-loading",
	FullyLoaded:       "fully-loaded",
	PartiallyLoaded:   "partially-loaded",
	Error:             "error",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

var transitions = map[Phase][]Phase{
	Idle:              {FirstPageLoading},
	FirstPageLoading:  {FirstPageLoaded, Error},
	FirstPageLoaded:   {BackgroundLoading, FirstPageLoading},
	BackgroundLoading: {FullyLoaded, PartiallyLoaded},
	FullyLoaded:       {FirstPageLoading},
	PartiallyLoaded:   {FirstPageLoading},
	Error:             {FirstPageLoading},
}

// CanTransition reports whether moving from p to next is allowed.
func (p Phase) CanTransition(next Phase) bool {
	for _, allowed := range transitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Settled reports whether no fetch is in flight.
func (p Phase) Settled() bool {
	return p != FirstPageLoading && p != BackgroundLoading
}
