package contracts

// PortInfo describes a MIDI input port as enumerated by the MIDI subsystem.
type PortInfo struct {
	Index        int    // Position of the port in the enumeration.
	Name         string // Display name, empty when the subsystem could not resolve it.
	Manufacturer string // Port manufacturer, if reported.
	EntityName   string // Name of the entity to which the port belongs.
}
