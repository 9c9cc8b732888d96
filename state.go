package triangles

// GameState is the lifecycle phase of the game host.
type GameState uint8

const (
	// StateStartup waits for the first layout, then builds the background
	// and the board.
	StateStartup GameState = iota
	// StateAssetLoading waits for the triangle textures.
	StateAssetLoading
	// StateReady is the steady state with the board fully populated.
	StateReady
)

func (s GameState) String() string {
	switch s {
	case StateStartup:
		return "startup"
	case StateAssetLoading:
		return "asset_loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// stateMachine runs exit and enter hooks on transitions. Hooks registered
// with once are removed after their first run.
type stateMachine struct {
	current GameState
	onExit  map[GameState][]stateHook
	onEnter map[GameState][]stateHook
}

type stateHook struct {
	fn   func()
	once bool
}

func newStateMachine(initial GameState) *stateMachine {
	return &stateMachine{
		current: initial,
		onExit:  make(map[GameState][]stateHook),
		onEnter: make(map[GameState][]stateHook),
	}
}

// OnExit registers fn to run when leaving s.
func (m *stateMachine) OnExit(s GameState, once bool, fn func()) {
	m.onExit[s] = append(m.onExit[s], stateHook{fn: fn, once: once})
}

// OnEnter registers fn to run when entering s.
func (m *stateMachine) OnEnter(s GameState, once bool, fn func()) {
	m.onEnter[s] = append(m.onEnter[s], stateHook{fn: fn, once: once})
}

// Set moves to next, running the exit hooks of the current state and then
// the enter hooks of next. Setting the current state is a no-op.
func (m *stateMachine) Set(next GameState) {
	if next == m.current {
		return
	}
	prev := m.current
	m.current = next
	Logger().Debug("state transition", "from", prev.String(), "to", next.String())
	m.onExit[prev] = runHooks(m.onExit[prev])
	m.onEnter[next] = runHooks(m.onEnter[next])
}

// Current returns the active state.
func (m *stateMachine) Current() GameState {
	return m.current
}

func runHooks(hooks []stateHook) []stateHook {
	kept := hooks[:0]
	for _, h := range hooks {
		h.fn()
		if !h.once {
			kept = append(kept, h)
		}
	}
	return kept
}
