package samachar

import _ "embed"

//go:embed taxonomy.yaml
var TaxonomyYAML []byte
