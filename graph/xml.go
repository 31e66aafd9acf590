package graph

import (
	"fmt"
	"io"

	"github.com/sarchlab/vle/internal/xmlcodec"
)

// WriteXML serializes m to w in the canonical form: model name and type,
// port lists, submodels (recursively), then three connection blocks in
// output / input / internal order.
func WriteXML(w io.Writer, m Model) error {
	return xmlcodec.Encode(w, toDoc(m))
}

func toDoc(m Model) xmlcodec.Model {
	doc := xmlcodec.Model{Name: m.Name(), Type: m.Kind().String()}
	for _, p := range m.InputPorts() {
		doc.InputPorts = append(doc.InputPorts, xmlcodec.Port{Name: p})
	}
	for _, p := range m.OutputPorts() {
		doc.OutputPorts = append(doc.OutputPorts, xmlcodec.Port{Name: p})
	}

	c, ok := m.(*CoupledModel)
	if !ok {
		return doc
	}

	for _, child := range c.Children() {
		doc.Submodels = append(doc.Submodels, toDoc(child))
	}

	conns := &xmlcodec.Connections{}
	for _, child := range c.Children() {
		for _, outPort := range child.OutputPorts() {
			key := PortRef{Model: child, Port: outPort}
			for _, ownPort := range c.OutputCouplings(key) {
				conns.Output = append(conns.Output, xmlcodec.Connection{
					SrcModel: child.Name(), SrcPort: outPort, DstPort: ownPort,
				})
			}
		}
	}
	for _, ownPort := range c.InputPorts() {
		for _, dst := range c.InputCouplings(ownPort) {
			conns.Input = append(conns.Input, xmlcodec.Connection{
				SrcPort: ownPort, DstModel: dst.Model.Name(), DstPort: dst.Port,
			})
		}
	}
	for _, childA := range c.Children() {
		for _, portA := range childA.OutputPorts() {
			key := PortRef{Model: childA, Port: portA}
			for _, dst := range c.InternalCouplings(key) {
				conns.Internal = append(conns.Internal, xmlcodec.Connection{
					SrcModel: childA.Name(), SrcPort: portA, DstModel: dst.Model.Name(), DstPort: dst.Port,
				})
			}
		}
	}
	if len(conns.Output) > 0 || len(conns.Input) > 0 || len(conns.Internal) > 0 {
		doc.Connections = conns
	}
	return doc
}

// ParseXML reconstructs a model tree from its canonical XML form. Atomic
// models are reconstructed without a Dynamics reference: the dynamics
// registry that supplies them is a separate part of the project file
// and is out of the tree's own persisted representation.
func ParseXML(r io.Reader) (Model, error) {
	doc, err := xmlcodec.Decode(r)
	if err != nil {
		return nil, err
	}
	return fromDoc(doc)
}

func fromDoc(doc xmlcodec.Model) (Model, error) {
	var m Model
	switch doc.Type {
	case "atomic":
		m = NewAtomicModel(doc.Name, nil)
	case "opaque":
		m = NewOpaqueModel(doc.Name)
	case "coupled":
		m = NewCoupledModel(doc.Name)
	default:
		return nil, fmt.Errorf("xmlcodec: unknown model type %q", doc.Type)
	}
	for _, p := range doc.InputPorts {
		m.addInputPort(p.Name)
	}
	for _, p := range doc.OutputPorts {
		m.addOutputPort(p.Name)
	}

	cm, ok := m.(*CoupledModel)
	if !ok {
		return m, nil
	}

	childByName := map[string]Model{}
	for _, sub := range doc.Submodels {
		child, err := fromDoc(sub)
		if err != nil {
			return nil, err
		}
		if err := cm.addChild(child.Name(), child); err != nil {
			return nil, err
		}
		childByName[child.Name()] = child
	}

	if doc.Connections != nil {
		for _, conn := range doc.Connections.Output {
			child, ok := childByName[conn.SrcModel]
			if !ok {
				return nil, &UnknownName{Name: conn.SrcModel}
			}
			if err := cm.AddOutputConnection(child, conn.SrcPort, conn.DstPort); err != nil {
				return nil, err
			}
		}
		for _, conn := range doc.Connections.Input {
			child, ok := childByName[conn.DstModel]
			if !ok {
				return nil, &UnknownName{Name: conn.DstModel}
			}
			if err := cm.AddInputConnection(conn.SrcPort, child, conn.DstPort); err != nil {
				return nil, err
			}
		}
		for _, conn := range doc.Connections.Internal {
			a, ok := childByName[conn.SrcModel]
			if !ok {
				return nil, &UnknownName{Name: conn.SrcModel}
			}
			b, ok := childByName[conn.DstModel]
			if !ok {
				return nil, &UnknownName{Name: conn.DstModel}
			}
			if err := cm.AddInternalConnection(a, conn.SrcPort, b, conn.DstPort); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
