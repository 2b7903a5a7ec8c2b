package convert

import (
	"strings"

	"github.com/agentstation/shelfsync/pkg/sources"
)

type propertyRef struct {
	level   int
	valueID string
}

type attribute struct {
	key   string
	value string
}

// attributeIndex resolves SKU property references against the sale
// property table of one payload.
type attributeIndex map[propertyRef][]attribute

func newAttributeIndex(props []sources.SaleProperty, translations map[string]string) attributeIndex {
	idx := make(attributeIndex)
	for _, sp := range props {
		for _, list := range sp.PropertyList {
			prefix := strings.ToLower(list.PropertyKey)
			for _, item := range list.PropertyItemModels {
				name := strings.ToLower(item.Name)
				if t, ok := translations[name]; ok {
					name = t
				}
				ref := propertyRef{level: sp.Level, valueID: item.PropertyValueID.String()}
				idx[ref] = append(idx[ref], attribute{key: prefix + "_" + name, value: item.Value})
			}
		}
	}
	return idx
}

// resolve returns the attributes referenced by a SKU. Later matches for the
// same key overwrite earlier ones.
func (idx attributeIndex) resolve(refs []sources.SkuProperty) map[string]string {
	attrs := make(map[string]string)
	for _, ref := range refs {
		for _, a := range idx[propertyRef{level: ref.Level, valueID: ref.PropertyValueID.String()}] {
			attrs[a.key] = a.value
		}
	}
	return attrs
}
