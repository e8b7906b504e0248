package repos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/device-tracker/internal/domain/model"
)

// ExampleTranslator turns a partially populated transfer object into SQL
// conditions: every populated field contributes an equality predicate,
// absent fields impose no constraint. This is deliberately the narrow
// equality-only subset of query-by-example the service needs.
type ExampleTranslator struct{}

func NewExampleTranslator() *ExampleTranslator {
	return &ExampleTranslator{}
}

func (t *ExampleTranslator) Conditions(example model.DeviceData) sq.Eq {
	conditions := sq.Eq{}

	if example.ID != nil {
		conditions["id"] = example.ID.String()
	}

	if example.Name != nil {
		conditions["name"] = *example.Name
	}

	if example.Brand != nil {
		conditions["brand"] = *example.Brand
	}

	if example.State != nil {
		conditions["state"] = example.State.String()
	}

	return conditions
}
