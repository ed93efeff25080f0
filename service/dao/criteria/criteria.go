package criteria

import (
	"github.com/viant/gridlock/service/dao"
)

// FilterByState reports whether an entity in the supplied lifecycle state
// passes the optional "State" list parameter.
func FilterByState(state string, parameters []*dao.Parameter) bool {
	switch len(parameters) {
	case 0:
		return true
	case 1:
		if parameters[0].Name == "State" {
			switch actual := parameters[0].Value.(type) {
			case string:
				return state == actual
			case []string:
				for _, candidate := range actual {
					if state == candidate {
						return true
					}
				}
				return false
			}
		}
	}
	return true
}
