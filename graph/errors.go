package graph

import "fmt"

// GraphError reports an invariant violation on a graph-mutation operation.
type GraphError struct {
	Op      string
	Message string
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph: %s: %s", e.Op, e.Message)
}

// UnknownName reports a lookup miss for a model name.
type UnknownName struct {
	Name string
}

func (e *UnknownName) Error() string {
	return fmt.Sprintf("graph: unknown model name %q", e.Name)
}

// PortDirectionError reports a port used with the wrong direction (e.g. an
// output port supplied where an input port was required).
type PortDirectionError struct {
	Model string
	Port  string
	Want  Direction
}

func (e *PortDirectionError) Error() string {
	return fmt.Sprintf("graph: port %q on model %q is not a %s port", e.Port, e.Model, e.Want)
}

// DuplicateName reports an attempt to add a child whose name already exists
// among its intended siblings.
type DuplicateName struct {
	Name string
}

func (e *DuplicateName) Error() string {
	return fmt.Sprintf("graph: duplicate name %q", e.Name)
}
