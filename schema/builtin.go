package schema

// Builtin returns the schemas shipped with the distribution. Deployments
// with their own taxonomy pass their schemas to NewRegistry directly.
func Builtin() []*CollectionSchema {
	return []*CollectionSchema{
		{
			Name: "policy_collection",
			Fields: map[string]FieldType{
				"region":         FieldString,
				"effective_year": FieldNumber,
				"department":     FieldString,
			},
			Hint: "Policy documents. The region is the US state or territory the policy applies to; use the two-letter postal abbreviation.",
			Normalizers: map[string]map[string]string{
				"region": {
					"new york":      "NY",
					"ny state":      "NY",
					"california":    "CA",
					"texas":         "TX",
					"massachusetts": "MA",
				},
			},
		},
		{
			Name: "product_catalog_collection",
			Fields: map[string]FieldType{
				"product_name": FieldString,
				"category":     FieldString,
				"model_year":   FieldNumber,
			},
			Hint: "Product catalog entries. Category is a short noun phrase such as 'laptop' or 'desk chair'.",
		},
	}
}
