// Package xmlcodec implements the canonical, order-sensitive XML wire
// shape used to persist a model tree. It knows nothing
// about the graph package's Model types; graph converts its tree to and
// from this plain document shape.
package xmlcodec

import (
	"encoding/xml"
	"io"
)

// Model is the canonical XML representation of one node in a model tree.
type Model struct {
	XMLName     xml.Name     `xml:"model"`
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr"`
	InputPorts  []Port       `xml:"inputPorts>port,omitempty"`
	OutputPorts []Port       `xml:"outputPorts>port,omitempty"`
	Submodels   []Model      `xml:"submodels>model,omitempty"`
	Connections *Connections `xml:"connections,omitempty"`
}

// Port names one input or output port.
type Port struct {
	Name string `xml:"name,attr"`
}

// Connections holds the three coupling blocks, always written in
// output / input / internal order.
type Connections struct {
	Output   []Connection `xml:"output>connection,omitempty"`
	Input    []Connection `xml:"input>connection,omitempty"`
	Internal []Connection `xml:"internal>connection,omitempty"`
}

// Connection is one coupling edge. Fields left empty refer implicitly to
// the enclosing coupled model itself (its own port, not a child's).
type Connection struct {
	SrcModel string `xml:"srcModel,attr,omitempty"`
	SrcPort  string `xml:"srcPort,attr"`
	DstModel string `xml:"dstModel,attr,omitempty"`
	DstPort  string `xml:"dstPort,attr"`
}

// Encode writes m to w as indented, canonical XML.
func Encode(w io.Writer, m Model) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return err
	}
	return enc.Flush()
}

// Decode reads a Model document from r.
func Decode(r io.Reader) (Model, error) {
	var m Model
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return Model{}, err
	}
	return m, nil
}
