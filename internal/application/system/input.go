package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/scenecam/internal/infrastructure/config"
)

// Action is a logical control, independent of the key it is bound to
type Action uint8

const (
	ActionQuit Action = iota
	ActionNext
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionZoomIn
	ActionZoomOut
	ActionViewportUp
	ActionViewportDown
	ActionViewportLeft
	ActionViewportRight
	actionCount
)

var actionNames = [actionCount]string{
	ActionQuit:          "quit",
	ActionNext:          "next",
	ActionPanUp:         "panUp",
	ActionPanDown:       "panDown",
	ActionPanLeft:       "panLeft",
	ActionPanRight:      "panRight",
	ActionZoomIn:        "zoomIn",
	ActionZoomOut:       "zoomOut",
	ActionViewportUp:    "viewportUp",
	ActionViewportDown:  "viewportDown",
	ActionViewportLeft:  "viewportLeft",
	ActionViewportRight: "viewportRight",
}

// String returns the config name of the action
func (a Action) String() string {
	if a < actionCount {
		return actionNames[a]
	}
	return "unknown"
}

// ParseAction returns the action with the given config name
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// ActionSet is the set of actions active in one frame
type ActionSet uint32

// With returns the set with a added
func (s ActionSet) With(a Action) ActionSet {
	return s | 1<<a
}

// Has reports whether a is in the set
func (s ActionSet) Has(a Action) bool {
	return s&(1<<a) != 0
}

// Empty reports whether no action is active
func (s ActionSet) Empty() bool {
	return s == 0
}

// Trigger decides which key predicate activates a binding
type Trigger uint8

const (
	// TriggerPressed is active every frame the key is held
	TriggerPressed Trigger = iota
	// TriggerJustPressed is active only on the frame the key goes down
	TriggerJustPressed
	// TriggerReleased is active only on the frame the key goes up
	TriggerReleased
)

// ParseTrigger parses a trigger name from config
func ParseTrigger(name string) (Trigger, error) {
	switch name {
	case "", "pressed":
		return TriggerPressed, nil
	case "justPressed":
		return TriggerJustPressed, nil
	case "released":
		return TriggerReleased, nil
	default:
		return 0, fmt.Errorf("unknown trigger %q", name)
	}
}

// KeyPoller answers per-frame key state queries
type KeyPoller interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	IsKeyJustReleased(key ebiten.Key) bool
}

// EbitenKeys polls the keyboard through ebiten
type EbitenKeys struct{}

func (EbitenKeys) IsKeyPressed(key ebiten.Key) bool      { return ebiten.IsKeyPressed(key) }
func (EbitenKeys) IsKeyJustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (EbitenKeys) IsKeyJustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }

// Binding maps an action to a key and trigger
type Binding struct {
	Key     ebiten.Key
	Trigger Trigger
}

func (b Binding) active(p KeyPoller) bool {
	switch b.Trigger {
	case TriggerJustPressed:
		return p.IsKeyJustPressed(b.Key)
	case TriggerReleased:
		return p.IsKeyJustReleased(b.Key)
	default:
		return p.IsKeyPressed(b.Key)
	}
}

// Bindings maps every bound action to its key
type Bindings map[Action]Binding

// DefaultBindings returns the stock keyboard layout
func DefaultBindings() Bindings {
	return Bindings{
		ActionQuit:          {ebiten.KeyQ, TriggerJustPressed},
		ActionNext:          {ebiten.KeyN, TriggerJustPressed},
		ActionPanDown:       {ebiten.KeyF, TriggerPressed},
		ActionPanUp:         {ebiten.KeyV, TriggerPressed},
		ActionPanRight:      {ebiten.KeyC, TriggerPressed},
		ActionPanLeft:       {ebiten.KeyB, TriggerPressed},
		ActionZoomIn:        {ebiten.KeyZ, TriggerPressed},
		ActionZoomOut:       {ebiten.KeyX, TriggerPressed},
		ActionViewportUp:    {ebiten.KeyW, TriggerPressed},
		ActionViewportLeft:  {ebiten.KeyA, TriggerReleased},
		ActionViewportDown:  {ebiten.KeyS, TriggerPressed},
		ActionViewportRight: {ebiten.KeyD, TriggerPressed},
	}
}

// ParseBindings builds bindings from config. Actions missing from cfg keep
// their default binding.
func ParseBindings(cfg map[string]config.BindingConfig) (Bindings, error) {
	b := DefaultBindings()
	for name, bc := range cfg {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(bc.Key)); err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		trigger, err := ParseTrigger(bc.Trigger)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		b[action] = Binding{Key: key, Trigger: trigger}
	}
	return b, nil
}

// Poll evaluates every binding once and returns the active actions
func (b Bindings) Poll(p KeyPoller) ActionSet {
	var set ActionSet
	for action, binding := range b {
		if binding.active(p) {
			set = set.With(action)
		}
	}
	return set
}

// ActionSource yields the active actions for the current frame
type ActionSource interface {
	Actions() ActionSet
}

// LiveInput reads actions from the keyboard
type LiveInput struct {
	bindings Bindings
	poller   KeyPoller
}

// NewLiveInput creates an action source over poller
func NewLiveInput(bindings Bindings, poller KeyPoller) *LiveInput {
	return &LiveInput{bindings: bindings, poller: poller}
}

// Actions implements ActionSource
func (l *LiveInput) Actions() ActionSet {
	return l.bindings.Poll(l.poller)
}
