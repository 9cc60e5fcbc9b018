package main

// ParametersGroup contains the definition of the parameters used by the grouping.
type ParametersGroup struct {
	// Input is the JSON or YAML file that contains the records.
	Input string `usage:"the JSON or YAML file that contains the records"`
	// Primary is the record field that is used as the primary key.
	Primary string `usage:"the record field that is used as the primary key"`
	// Secondary is the record field that is used as the secondary key.
	Secondary string `usage:"the record field that is used as the secondary key"`
	// Value is the record field whose value is stored.
	Value string `usage:"the record field whose value is stored"`
	// Ordered keeps the order in which the keys appear in the records.
	Ordered bool `usage:"whether to keep the order in which the keys appear in the records"`
	// KeepFirst keeps the first value of duplicate key pairs.
	KeepFirst bool `usage:"whether to keep the first value of duplicate key pairs instead of the last one"`
	// SkipIncomplete ignores records that miss one of the fields.
	SkipIncomplete bool `usage:"whether to ignore records that miss one of the fields"`
	// Format is the output format.
	Format string `default:"text" usage:"the output format (text, json or base58)"`
	// BatchSize splits the output into batches of at most this many entries.
	BatchSize int `usage:"the maximum amount of entries per printed batch (0 disables batching)"`
}
