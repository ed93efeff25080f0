package resource

// Kind identifies a class of simulated system resource. The set of kinds is
// closed: levels, catalogs and allocation commands may only reference the
// constants below.
type Kind string

const (
	KindCPU     Kind = "cpu"
	KindMemory  Kind = "memory"
	KindDisk    Kind = "disk"
	KindPrinter Kind = "printer"
)

// Kinds returns every known resource kind in canonical order.
func Kinds() []Kind {
	return []Kind{KindCPU, KindMemory, KindDisk, KindPrinter}
}

// Valid reports whether k is one of the known resource kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindCPU, KindMemory, KindDisk, KindPrinter:
		return true
	}
	return false
}
