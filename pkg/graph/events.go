package graph

// EventKind identifies a model notification.
type EventKind int

const (
	NodeAdded EventKind = iota
	NodeRemoved
	ConnectionAdded
	ConnectionRemoved
	MiscChange
)

func (k EventKind) String() string {
	switch k {
	case NodeAdded:
		return "node_added"
	case NodeRemoved:
		return "node_removed"
	case ConnectionAdded:
		return "connection_added"
	case ConnectionRemoved:
		return "connection_removed"
	case MiscChange:
		return "misc_change"
	default:
		return "unknown"
	}
}

// Event describes a mutation that has already been applied to the model.
type Event struct {
	Kind       EventKind
	Node       *Node       // NodeAdded, NodeRemoved
	Connection *Connection // ConnectionAdded, ConnectionRemoved

	// From and To hold the endpoints of a removed connection, whose own
	// endpoint fields are cleared by the time observers run.
	From *Connector
	To   *Connector

	Reason string // MiscChange
}

// Observer receives model notifications synchronously.
type Observer interface {
	GraphChanged(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

func (f ObserverFunc) GraphChanged(e Event) { f(e) }

type subscription struct {
	observer Observer
}

// observerList keeps subscribers in registration order. Dispatch works on a
// snapshot so handlers may subscribe, unsubscribe or mutate the model.
type observerList struct {
	subs []*subscription
}

func (l *observerList) add(o Observer) func() {
	sub := &subscription{observer: o}
	l.subs = append(l.subs, sub)
	return func() { l.remove(sub) }
}

func (l *observerList) remove(sub *subscription) {
	for i, other := range l.subs {
		if other == sub {
			l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
			return
		}
	}
}

func (l *observerList) dispatch(e Event) {
	snapshot := l.subs
	for _, sub := range snapshot {
		sub.observer.GraphChanged(e)
	}
}
