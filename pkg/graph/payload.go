package graph

// Payload is the domain identity attached to a node. The set of payloads is
// closed: ContentPayload, SubGraphPayload, or nil for scratch nodes.
type Payload interface {
	payload() // marker method restricting implementations to this package
}

// ContentPayload identifies a node built by the node factory. Only nodes
// carrying it are emitted by lowering.
type ContentPayload struct {
	ID              uint32
	DeclarationID   string // e.g. "Node_12"
	DeclarationType string // storage type identifier
}

// SubGraphPayload marks a node as the header that declares a subgraph.
type SubGraphPayload struct {
	Name       string
	Implements string
	Ref        any // opaque back-reference, only used for UI description lookup
}

func (ContentPayload) payload()  {}
func (SubGraphPayload) payload() {}
