package registration

import "fmt"

type Category string

const (
	CategoryUnset      Category = ""
	CategoryIndividual Category = "individual"
	CategoryGroup      Category = "group"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryUnset, CategoryIndividual, CategoryGroup:
		return c, nil
	default:
		return CategoryUnset, fmt.Errorf("unknown shoot category %q", s)
	}
}

// Label is the human-readable name sent to the spreadsheet and shown in the summary.
func (c Category) Label() string {
	switch c {
	case CategoryIndividual:
		return "Individual Portrait"
	case CategoryGroup:
		return "Group Portrait"
	default:
		return ""
	}
}

func (c Category) codePrefix() string {
	if c == CategoryIndividual {
		return "WS-I-"
	}
	return "WS-G-"
}
