// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package schema

import (
	"gopkg.in/yaml.v3"

	"github.com/arrowarc/arrowarc/pqerr"
)

// yamlField mirrors FieldSpec's shape for unmarshaling a YAML document,
// grounded on pkg/common/config's yaml.v3-based configuration style.
type yamlField struct {
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"`
	Nullable      *bool   `yaml:"nullable"`
	Format        string  `yaml:"format"`
	Precision     *int32  `yaml:"precision"`
	Scale         *int32  `yaml:"scale"`
	Timezone      *string `yaml:"timezone"`
	HasTimezone   *bool   `yaml:"has_timezone"`
	ItemNullable  *bool   `yaml:"item_nullable"`
	KeyNullable   *bool   `yaml:"key_nullable"`
	ValueNullable *bool   `yaml:"value_nullable"`
}

type yamlDoc struct {
	Fields []yamlField `yaml:"fields"`
}

// ParseYAML parses a YAML document of the form:
//
//	fields:
//	  - name: id
//	    type: int64
//	  - name: price
//	    type: decimal
//	    precision: 10
//	    scale: 2
//
// into the internal schema tree, delegating to ParseFields once decoded.
// This is an additional, convenience front door layered on top of the
// three programmatic forms; it does not change their contract.
func ParseYAML(data []byte) (*Node, error) {
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, pqerr.Wrap(pqerr.Schema, "parse_schema", "", err)
	}

	specs := make([]FieldSpec, len(doc.Fields))
	for i, f := range doc.Fields {
		specs[i] = FieldSpec{
			Name: f.Name, Type: f.Type, Nullable: f.Nullable, Format: f.Format,
			Precision: f.Precision, Scale: f.Scale, Timezone: f.Timezone,
			HasTimezone: f.HasTimezone, ItemNullable: f.ItemNullable,
			KeyNullable: f.KeyNullable, ValueNullable: f.ValueNullable,
		}
	}
	return ParseFields(specs)
}
