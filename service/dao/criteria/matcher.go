package criteria

import (
	"github.com/viant/brigade/service/dao"
)

// StatusParameter is the parameter name recognised by FilterByStatus
const StatusParameter = "Status"

// FilterByStatus reports whether status satisfies the Status parameter, if any.
func FilterByStatus(status string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != StatusParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return status == actual
		case []string:
			for _, s := range actual {
				if status == s {
					return true
				}
			}
			return false
		}
	}
	return true
}
