package deploy

import (
	"fmt"
	"strings"
)

// Operation is one staging command.
type Operation int

const (
	New Operation = iota
	Delete
	Populate
	Update
	Activate
	Status
	Run
)

var operationNames = map[Operation]string{
	New:      "new",
	Delete:   "delete",
	Populate: "populate",
	Update:   "update",
	Activate: "activate",
	Status:   "status",
	Run:      "run",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

// ParseOperation returns the operation named s.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for op, name := range operationNames {
		if name == s {
			return op, nil
		}
	}
	return 0, Usage(fmt.Errorf("unknown operation %q", s))
}

// needsModule reports whether the operation acts on a single module.
func (o Operation) needsModule() bool {
	switch o {
	case Populate, Update, Activate:
		return true
	default:
		return false
	}
}
